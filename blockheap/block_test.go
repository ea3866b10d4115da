package blockheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestArena(n int) *byte {
	buf := make([]byte, n)
	return &buf[0]
}

func TestAlign8(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 24: 24, 25: 32}
	for in, want := range cases {
		assert.Equal(t, want, align8(in), "align8(%d)", in)
	}
}

func TestHeaderAndFooterOffsets(t *testing.T) {
	assert.Equal(t, 12, headerOffset(16))
	assert.Equal(t, 16+32-8, footerOffset(16, 32))
}

func TestWriteBlockRoundTripsAllocated(t *testing.T) {
	base := newTestArena(64)
	p := 4
	writeBlock(base, p, 32, false)
	assert.Equal(t, 32, sizeOf(base, p))
	assert.Equal(t, -1, freeTag(base, p, 32))
}

func TestWriteBlockRoundTripsFree(t *testing.T) {
	base := newTestArena(64)
	p := 4
	writeBlock(base, p, 32, true)
	assert.Equal(t, 32, sizeOf(base, p))
	assert.Equal(t, 32, freeTag(base, p, 32))
}

func TestMarkAllocatedThenFreeTransitions(t *testing.T) {
	base := newTestArena(64)
	p := 4
	writeBlock(base, p, 32, true)
	markAllocated(base, p, 32)
	assert.Equal(t, -1, freeTag(base, p, 32))
	markFree(base, p, 32)
	assert.Equal(t, 32, freeTag(base, p, 32))
}

package blockheap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsistencyCheckPassesOnFreshHeap(t *testing.T) {
	h := newTestHeap(t, 4096)
	require.NoError(t, h.ConsistencyCheck())
}

func TestConsistencyCheckPassesAfterMixedWorkload(t *testing.T) {
	h := newTestHeap(t, 1<<16)
	var ptrs []int
	for i := 0; i < 8; i++ {
		p, ok := h.Alloc(32 + i*16)
		require.True(t, ok)
		ptrs = append(ptrs, p)
	}
	for i := 0; i < len(ptrs); i += 2 {
		h.Free(ptrs[i])
	}
	_, ok := h.Realloc(ptrs[1], 500)
	require.True(t, ok)

	require.NoError(t, h.ConsistencyCheck())
}

func TestConsistencyCheckDetectsCorruptHeader(t *testing.T) {
	h := newTestHeap(t, 4096)
	p, ok := h.Alloc(64)
	require.True(t, ok)

	setHeader(h.region.Base(), p, 4) // below MinBlock

	err := h.ConsistencyCheck()
	require.Error(t, err)
}

func TestConsistencyCheckDetectsOvershootingWalk(t *testing.T) {
	h := newTestHeap(t, 4096)
	p, ok := h.Alloc(64)
	require.True(t, ok)

	// Inflate the header so the walk overshoots region_hi+1.
	setHeader(h.region.Base(), p, sizeOf(h.region.Base(), p)+800)

	err := h.ConsistencyCheck()
	require.Error(t, err)
}

// Package blockheap implements the core of a single-threaded general
// purpose allocator: block layout with boundary tags, a segregated
// free-list indexed by size class, best-fit placement with splitting,
// boundary-tag coalescing, and last-block-aware region growth.
//
// A Heap is the only type callers need; everything else in this package
// is implementation detail reachable only through it. All pointer
// arithmetic is confined to this file (block.go) and freelist.go, the way
// the teacher's BuddyAllocator confines unsafe.Pointer math to a handful
// of functions and lets the rest of the package work with plain int
// offsets.
package blockheap

import "unsafe"

const (
	// wordSize is the width of a header or footer field, in bytes.
	wordSize = 4

	// MinBlock is the minimum block size, 32 bytes. Header, the two link
	// words (next, prev, reused from the free payload) and footer take 16
	// of them at 4 bytes each; the rest is spare payload.
	MinBlock = 32

	// PerfectSize is the batch extension granularity used when no free
	// block fits a small request (spec.md §4.4 step 4).
	PerfectSize = 4096

	// NumBins is the number of segregated free-list size classes.
	NumBins = 27

	// freeTagAllocated is the footer sentinel marking a block in use.
	freeTagAllocated = -1

	// nullOffset marks an absent free-list link or an empty bin head.
	nullOffset = -1
)

// align8 rounds n up to the next multiple of 8.
func align8(n int) int {
	return (n + 7) &^ 7
}

// readI32 reads a native-endian 32-bit signed integer at byte offset off
// from base.
func readI32(base *byte, off int) int32 {
	return *(*int32)(unsafe.Add(unsafe.Pointer(base), off))
}

// writeI32 writes v as a native-endian 32-bit signed integer at byte
// offset off from base.
func writeI32(base *byte, off int, v int32) {
	*(*int32)(unsafe.Add(unsafe.Pointer(base), off)) = v
}

// headerOffset returns the offset of p's header: p-4.
func headerOffset(p int) int { return p - wordSize }

// footerOffset returns the offset of the footer of a size-byte block
// whose user pointer is p: p+size-8.
func footerOffset(p, size int) int { return p + size - 2*wordSize }

// sizeOf reads the total block size (header + payload + footer) for the
// block at user pointer p.
func sizeOf(base *byte, p int) int {
	return int(readI32(base, headerOffset(p)))
}

// setHeader writes size into the header of the block at user pointer p.
func setHeader(base *byte, p, size int) {
	writeI32(base, headerOffset(p), int32(size))
}

// freeTag reads the footer of a size-byte block at user pointer p:
// positive means free (and equals size), -1 means allocated.
func freeTag(base *byte, p, size int) int {
	return int(readI32(base, footerOffset(p, size)))
}

// markAllocated writes the allocated sentinel (-1) into the footer of the
// size-byte block at user pointer p.
func markAllocated(base *byte, p, size int) {
	writeI32(base, footerOffset(p, size), freeTagAllocated)
}

// markFree writes size into the footer of the size-byte block at user
// pointer p, the free tag (spec.md I2: footer == size iff free).
func markFree(base *byte, p, size int) {
	writeI32(base, footerOffset(p, size), int32(size))
}

// writeBlock stamps both header and footer of a size-byte block at p,
// tagging it allocated or free as requested. It does not touch the
// free-list links; callers that create a free block must also call
// setNext/setPrev (see freelist.go).
func writeBlock(base *byte, p, size int, free bool) {
	setHeader(base, p, size)
	if free {
		markFree(base, p, size)
	} else {
		markAllocated(base, p, size)
	}
}

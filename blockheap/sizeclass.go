package blockheap

import "math/bits"

// binIndex returns the largest k with 2^k <= sz, for sz >= 1 — i.e.
// floor(log2(sz)) — clamped to the top bin for sizes this allocator's
// fixed NumBins-wide index can't represent exactly. This mirrors
// getOrderForSize in the teacher's BuddyAllocator (bits.Len-based order
// computation) generalized from "order relative to minBlockSize" to
// "absolute floor(log2(sz))" since spec.md's bins are defined in absolute
// size terms, not relative to a minimum block.
func binIndex(sz int) int {
	if sz < 1 {
		sz = 1
	}
	k := bits.Len(uint(sz)) - 1
	if k >= NumBins {
		return NumBins - 1
	}
	return k
}

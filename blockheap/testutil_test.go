package blockheap

import "testing"

// blockInfo describes one block found by walking the heap's header chain.
type blockInfo struct {
	offset int // user-pointer offset
	size   int
	free   bool
}

// walkBlocks walks every block in the heap from first to last via header
// sizes, the same traversal ConsistencyCheck performs, and reports each
// one's user pointer, size and free/allocated state.
func walkBlocks(t *testing.T, h *Heap) []blockInfo {
	t.Helper()
	base := h.region.Base()
	hi := h.region.Hi()
	cursor := alignPad()

	var blocks []blockInfo
	for cursor <= hi {
		size := int(readI32(base, cursor))
		if size < MinBlock {
			t.Fatalf("walkBlocks: corrupt header at %d: size %d", cursor, size)
		}
		p := cursor + wordSize
		tag := freeTag(base, p, size)
		blocks = append(blocks, blockInfo{offset: p, size: size, free: tag > 0})
		cursor += size
	}
	return blocks
}

// assertNoAdjacentFreeBlocks verifies spec.md I4.
func assertNoAdjacentFreeBlocks(t *testing.T, h *Heap) {
	t.Helper()
	blocks := walkBlocks(t, h)
	for i := 1; i < len(blocks); i++ {
		if blocks[i-1].free && blocks[i].free {
			t.Fatalf("adjacent free blocks at offsets %d and %d", blocks[i-1].offset, blocks[i].offset)
		}
	}
}

// freeBlocksInFreeList scans every bin and returns every block linked
// into it, independent of walkBlocks' header-only traversal — used to
// cross-check that the free-list set agrees with the header chain.
func freeBlocksInFreeList(h *Heap) []blockInfo {
	base := h.region.Base()
	var blocks []blockInfo
	for idx := 0; idx < NumBins; idx++ {
		for cur := int(h.bins.heads[idx]); cur != nullOffset; cur = nextOf(base, cur) {
			blocks = append(blocks, blockInfo{offset: cur, size: sizeOf(base, cur), free: true})
		}
	}
	return blocks
}

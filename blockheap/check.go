package blockheap

import "fmt"

// ConsistencyCheck walks the region from the first block's header to the
// last, using only header-encoded sizes, and succeeds iff the walk lands
// exactly on region_hi+1 (spec.md I1, §6). It exists for test-time
// verification, not production recovery (spec.md §7) — callers should
// require.NoError(t, h.ConsistencyCheck()) after exercising a heap, not
// call it on a hot path.
func (h *Heap) ConsistencyCheck() error {
	hi := h.region.Hi()
	cursor := alignPad()

	for cursor <= hi {
		base := h.region.Base()
		size := int(readI32(base, cursor))
		if size < MinBlock {
			return fmt.Errorf("blockheap: corrupt header at offset %d: size %d below MinBlock", cursor, size)
		}
		cursor += size
	}

	if cursor != hi+1 {
		return fmt.Errorf("blockheap: walk ended at offset %d, want %d (region_hi+1)", cursor, hi+1)
	}
	return nil
}

package blockheap

// NullPtr is the sentinel "no pointer" value returned by Alloc on
// exhaustion and accepted by Free/Realloc as a no-op, matching spec.md's
// "return a null sentinel" contract without committing to any particular
// representation (no user pointer this package ever returns is this
// small: Init reserves the alignment pad before the first block header is
// ever written).
const NullPtr = 0

// Alloc returns a user pointer to a block of at least size usable bytes,
// or (NullPtr, false) if the backing region is exhausted. This is the
// placement engine (spec.md §4.4): a best-fit search of the segregated
// free-list, falling back to batch or exact region growth, with a
// fast path for extending the heap's trailing block in place.
func (h *Heap) Alloc(size int) (int, bool) {
	if size <= 0 {
		size = 1
	}
	aligned := align8(size + 2*wordSize)
	if aligned < MinBlock {
		aligned = MinBlock
	}
	return h.allocAligned(aligned)
}

// allocAligned runs the placement policy for a request already rounded up
// to a block size (header + payload + footer, 8-byte aligned, >= MinBlock).
func (h *Heap) allocAligned(aligned int) (int, bool) {
	base := h.region.Base()

	if p, old, ok := h.bins.bestFit(base, aligned); ok {
		h.bins.remove(base, p, old)
		delta := old - aligned
		if delta >= MinBlock {
			writeBlock(base, p, aligned, false)
			h.reclaim(p+aligned, delta)
		} else {
			// Keep the whole block; splitting would leave a remainder too
			// small to ever be independently useful (spec.md §4.4 step 3).
			writeBlock(base, p, old, false)
		}
		return p, true
	}

	if aligned <= PerfectSize {
		// Amortize the cost of extending the region across many small
		// allocations: grow by a full PerfectSize chunk, hand it to the
		// reclamation engine as a fresh free block, and retry. Spec.md
		// §4.4 step 4 calls this out explicitly as a batching strategy.
		if rawStart, err := h.region.Extend(PerfectSize); err == nil {
			h.reclaim(rawStart+wordSize, PerfectSize)
			return h.allocAligned(aligned)
		}
		// The region doesn't have a full PerfectSize chunk left (a region
		// sized close to PerfectSize itself, for instance). Fall through to
		// growing by exactly what this request needs instead of declaring
		// exhaustion on a batching strategy that was only ever an
		// optimization.
	}

	return h.growExact(aligned)
}

// growExact grows the region by exactly enough to satisfy aligned, either by
// extending the trailing free block in place or, if there is none, by
// extending the region with a brand new block.
func (h *Heap) growExact(aligned int) (int, bool) {
	base := h.region.Base()

	if h.last != nullOffset && h.lastIsFree(base) {
		lastP := int(h.last)
		lastSize := sizeOf(base, lastP)
		grow := aligned - lastSize
		if _, err := h.region.Extend(grow); err != nil {
			return 0, false
		}
		h.bins.remove(base, lastP, lastSize)
		writeBlock(base, lastP, aligned, false)
		return lastP, true
	}

	rawStart, err := h.region.Extend(aligned)
	if err != nil {
		return 0, false
	}
	p := rawStart + wordSize
	writeBlock(base, p, aligned, false)
	h.last = int32(p)
	return p, true
}

// lastIsFree reports whether the heap's trailing block is currently free.
func (h *Heap) lastIsFree(base *byte) bool {
	p := int(h.last)
	return freeTag(base, p, sizeOf(base, p)) > 0
}

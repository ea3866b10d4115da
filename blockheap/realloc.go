package blockheap

// Realloc resizes the block at user pointer p to hold at least size
// usable bytes, in place when possible, returning the (possibly new)
// user pointer, or (NullPtr, false) on exhaustion during a grow that
// required region extension. p == NullPtr delegates to Alloc. Implements
// spec.md §4.5's reallocate: shrink-in-place, grow-in-place at the
// trailing block, grow by absorbing a free right neighbor (splitting or
// extending it as needed), and a copying fallback otherwise.
func (h *Heap) Realloc(p int, size int) (int, bool) {
	if p == NullPtr {
		return h.Alloc(size)
	}
	if size <= 0 {
		size = 1
	}

	base := h.region.Base()
	old := sizeOf(base, p)
	newSize := align8(size + 2*wordSize)
	if newSize < MinBlock {
		newSize = MinBlock
	}

	if old >= newSize {
		return h.shrink(p, old, newSize), true
	}

	if int(h.last) == p {
		grow := newSize - old
		if _, err := h.region.Extend(grow); err != nil {
			return 0, false
		}
		writeBlock(base, p, newSize, false)
		return p, true
	}

	hi := h.region.Hi()
	if q := p + old; q <= hi {
		qSize := sizeOf(base, q)
		if freeTag(base, q, qSize) > 0 {
			if old+qSize >= newSize {
				return h.growIntoNeighbor(p, old, qSize, newSize), true
			}
			if int(h.last) == q {
				shortfall := newSize - (old + qSize)
				if _, err := h.region.Extend(shortfall); err != nil {
					return 0, false
				}
				h.bins.remove(base, q, qSize)
				writeBlock(base, p, newSize, false)
				h.last = int32(p)
				return p, true
			}
		}
	}

	return h.reallocCopy(p, old, size)
}

// shrink implements spec.md §4.5 step 2: keep p unchanged if the leftover
// would be smaller than MinBlock, otherwise split and free the tail.
func (h *Heap) shrink(p, old, newSize int) int {
	if old-newSize < MinBlock {
		return p
	}
	base := h.region.Base()
	writeBlock(base, p, newSize, false)
	h.reclaim(p+newSize, old-newSize)
	return p
}

// growIntoNeighbor absorbs the free right-neighbor of size qSize into p's
// block, splitting off a new free block if there's enough leftover, or
// absorbing it whole otherwise. Mirrors spec.md §4.5 step 4.
func (h *Heap) growIntoNeighbor(p, old, qSize, newSize int) int {
	base := h.region.Base()
	q := p + old
	wasLast := int(h.last) == q

	h.bins.remove(base, q, qSize)
	combined := old + qSize
	leftover := combined - newSize

	if leftover >= MinBlock {
		writeBlock(base, p, newSize, false)
		h.reclaim(p+newSize, leftover)
		return p
	}

	writeBlock(base, p, combined, false)
	if wasLast {
		h.last = int32(p)
	}
	return p
}

// reallocCopy is the fallback of spec.md §4.5 step 6: allocate fresh,
// copy the live payload, free the old block.
func (h *Heap) reallocCopy(p, old, requestedSize int) (int, bool) {
	newP, ok := h.Alloc(requestedSize)
	if !ok {
		return 0, false
	}

	base := h.region.Base()
	newSize := sizeOf(base, newP)
	copyLen := old
	if newSize < copyLen {
		copyLen = newSize
	}
	copyLen -= 2 * wordSize
	if copyLen > 0 {
		buf := h.region.Bytes()
		copy(buf[newP:newP+copyLen], buf[p:p+copyLen])
	}

	h.Free(p)
	return newP, true
}

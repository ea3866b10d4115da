package blockheap

// Free returns the block at user pointer p to the heap for reuse. It
// tolerates p == NullPtr (a silent no-op), matches spec.md §4.5.
//
// Freeing anything other than a live pointer previously returned by Alloc
// (or Realloc) on this same Heap is undefined behavior — this package
// does not attempt to detect it (spec.md §7). Heap.Owns offers a cheap,
// best-effort pre-check for callers that don't trust their pointer.
func (h *Heap) Free(p int) {
	if p == NullPtr {
		return
	}

	// Defensive: under correct usage this branch is never taken (spec.md
	// Design Notes §9). It exists only to keep `last` from going stale if
	// a caller frees a pointer past the recorded trailing block.
	if p > int(h.last) {
		h.last = int32(p)
	}

	base := h.region.Base()
	h.reclaim(p, sizeOf(base, p))
}

// reclaim marks the size-byte block at p free, coalesces it with any free
// neighbor on either side (spec.md I4: no two adjacent free blocks may
// coexist after a free completes), and inserts the resulting block into
// the free-list set. It also keeps Heap.last in sync: whichever block
// ends up occupying the region's last byte after coalescing is the new
// trailing block, computed once at the end rather than tracked through
// every intermediate merge.
func (h *Heap) reclaim(p, size int) {
	base := h.region.Base()
	hi := h.region.Hi()
	total := size

	// Forward coalescing: p is not the trailing block (there's a byte at
	// p+total) and that neighbor's footer says it's free.
	if q := p + total; q <= hi {
		qSize := sizeOf(base, q)
		if freeTag(base, q, qSize) > 0 {
			h.bins.remove(base, q, qSize)
			total += qSize
		}
	}

	// Backward coalescing: skip when p is the leftmost managed block,
	// i.e. there is no footer word before its header.
	if prevFooter := p - 2*wordSize; prevFooter >= alignPad() {
		prevSize := int(readI32(base, prevFooter))
		if prevSize > 0 {
			q := p - prevSize
			h.bins.remove(base, q, prevSize)
			total += prevSize
			p = q
		}
	}

	h.bins.insert(base, p, total)

	if p-wordSize+total-1 == hi {
		h.last = int32(p)
	}
}

package blockheap

// A free block's payload doubles as an intrusive doubly-linked list node:
//
//	offset p+0 : next (user-pointer offset of the next free block in bin, or nullOffset)
//	offset p+4 : prev (user-pointer offset of the previous free block in bin, or nullOffset)
//
// This is the Go-idiomatic form of original_source/mymalloc/allocator.c's
// `struct node { struct node *next, *prev; }` laid over the free payload:
// the raw pointers become int offsets relative to the region base (Design
// Notes §9), and every read/write of them is confined to this file plus
// block.go, so freeListSet's own methods never touch unsafe.Pointer
// directly.

func nextOf(base *byte, p int) int  { return int(readI32(base, p)) }
func prevOf(base *byte, p int) int  { return int(readI32(base, p+wordSize)) }
func setNext(base *byte, p, v int)  { writeI32(base, p, int32(v)) }
func setPrev(base *byte, p, v int)  { writeI32(base, p+wordSize, int32(v)) }

// freeListSet is the segregated free-list: one intrusive doubly-linked
// LIFO list head per size-class bin. The zero value (all heads
// nullOffset) is a valid, empty set.
type freeListSet struct {
	heads [NumBins]int32
}

// reset clears every bin, as Heap.Init and Heap.Reset require.
func (s *freeListSet) reset() {
	for i := range s.heads {
		s.heads[i] = nullOffset
	}
}

// insert stamps header/footer marking the size-byte block at p free, and
// links it at the head of the bin for size. O(1).
func (s *freeListSet) insert(base *byte, p, size int) {
	writeBlock(base, p, size, true)

	idx := binIndex(size)
	head := int(s.heads[idx])
	setNext(base, p, head)
	setPrev(base, p, nullOffset)
	if head != nullOffset {
		setPrev(base, head, p)
	}
	s.heads[idx] = int32(p)
}

// remove marks the size-byte block at p allocated and unlinks it from its
// bin. No-op if the bin is already empty (spec.md §4.3); does not
// validate that p is actually a member of bin binIndex(size) — callers
// are expected to know that already (best-fit scanned it there, or
// coalescing read its footer there).
func (s *freeListSet) remove(base *byte, p, size int) {
	idx := binIndex(size)
	if s.heads[idx] == nullOffset {
		markAllocated(base, p, size)
		return
	}

	markAllocated(base, p, size)

	next := nextOf(base, p)
	prev := prevOf(base, p)

	if int(s.heads[idx]) == p {
		s.heads[idx] = int32(next)
	}
	if next != nullOffset {
		setPrev(base, next, prev)
	}
	if prev != nullOffset {
		setNext(base, prev, next)
	}
}

// bestFit scans bins from binIndex(need) upward, returning the user
// pointer of the smallest free block able to hold need bytes and its
// actual size, or (0, 0, false) if none exists in any bin. It scans only
// the first bin with a fit (Design Notes §9, "best-fit vs first-fit
// trade-off") rather than continuing to higher bins once one yields a
// candidate.
func (s *freeListSet) bestFit(base *byte, need int) (p, size int, ok bool) {
	start := binIndex(need)
	for idx := start; idx < NumBins; idx++ {
		head := int(s.heads[idx])
		if head == nullOffset {
			continue
		}

		bestP, bestSize := 0, -1
		minimal := 1 << idx // theoretical smallest block size for this bin
		for cur := head; cur != nullOffset; cur = nextOf(base, cur) {
			curSize := sizeOf(base, cur)
			if curSize >= need && (bestSize == -1 || curSize < bestSize) {
				bestP, bestSize = cur, curSize
				if curSize == minimal {
					break // can't do better within this bin
				}
			}
		}
		if bestSize != -1 {
			return bestP, bestSize, true
		}
	}
	return 0, 0, false
}

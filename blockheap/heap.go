package blockheap

import (
	"fmt"

	"github.com/blockheap/blockheap/region"
)

// Heap is a segregated-fit, boundary-tag allocator over a region.Region.
// It owns the free-list bin array and the "last block" pointer as
// instance state (Design Notes §9: "re-architect as an allocator value"),
// so two Heaps over two Regions never interfere — unlike the C lab this
// package is descended from, which kept both as process globals.
type Heap struct {
	region *region.Region
	bins   freeListSet
	last   int32 // user-pointer offset of the rightmost managed block, or nullOffset
}

// New constructs a Heap over r. Call Init before the first Alloc.
func New(r *region.Region) *Heap {
	return &Heap{region: r, last: nullOffset}
}

// alignPad returns the number of leading padding bytes the region needs
// so that the first user pointer (header offset + 4) lands on a 16-byte
// boundary, given that the region's own base is 16-byte aligned (spec.md
// §4.1, re-derived per Design Notes §9 rather than hard-coded).
//
// With a 4-byte header/footer word, the first block's header sits at
// offset pad and its user pointer at pad+4. We need (pad+4) mod 16 == 0,
// i.e. pad ≡ -4 ≡ 12 (mod 16). The smallest non-negative such pad is 12.
func alignPad() int {
	const userPointerAlign = 16
	pad := userPointerAlign - wordSize
	return pad % userPointerAlign
}

// Init prepares the heap for use: clears the free-list bins and reserves
// the leading alignment pad. Idempotent — calling it twice is a no-op
// after the first successful call, mirroring the double-init guard
// malloc_wrapper.c's init() keeps around its own initialized flag.
func (h *Heap) Init() error {
	if h.initialized() {
		return nil
	}
	h.bins.reset()
	h.last = nullOffset
	if _, err := h.region.Extend(alignPad()); err != nil {
		return fmt.Errorf("blockheap: init: %w", err)
	}
	return nil
}

// initialized reports whether Init has already run once: the region is
// at least alignPad bytes long, whether or not blocks follow the pad.
func (h *Heap) initialized() bool {
	return h.region.Size() >= alignPad()
}

// Reset returns the heap to its just-initialized state without
// reallocating the backing region — supplemented from both of the
// teacher's allocators' Reset() methods (spec.md's operation table has
// no equivalent; see SPEC_FULL.md "Supplemented features").
//
// Reset does not shrink the region (regions never shrink, spec.md §1); it
// only clears bookkeeping, so previously extended bytes remain part of
// the region but are abandoned as a single implicit free run. Callers
// that want a byte-identical fresh heap should construct a new Region.
func (h *Heap) Reset() {
	h.bins.reset()
	h.last = nullOffset
}

// Available returns the total number of bytes held across every free-list
// bin (not counting header/footer overhead), supplemented from both
// teacher allocators' Available() method.
func (h *Heap) Available() int {
	if h.region.Size() == 0 {
		return 0
	}
	base := h.region.Base()
	total := 0
	for idx := 0; idx < NumBins; idx++ {
		for cur := int(h.bins.heads[idx]); cur != nullOffset; cur = nextOf(base, cur) {
			total += sizeOf(base, cur) - 2*wordSize
		}
	}
	return total
}

// Owns reports whether p could plausibly be a live user pointer returned
// by this heap: in bounds and aligned to an 8-byte block boundary
// relative to the region base. It does not check the magic/free tag, so
// it cannot detect a stale or double-freed pointer — only gross
// corruption or foreign pointers. Supplemented from both teacher
// allocators' IsValidOffset.
func (h *Heap) Owns(p int) bool {
	if p < alignPad()+wordSize || p > h.region.Hi() {
		return false
	}
	return p%8 == 0
}

// Package region simulates a monotone-growth byte address space, the
// single collaborator the blockheap allocator is allowed to ask for more
// memory. It plays the role of memlib.c/real_memlib.c in the allocator
// lab this package is descended from: region_extend never shrinks the
// arena, and region_lo/region_hi/region_size describe the live range.
package region

import (
	"fmt"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// DefaultCapacity bounds how large a Region may grow. Real heap-extension
// primitives are bounded by address space rather than a fixed number, but
// a Go simulation needs one fixed backing array so that the cached base
// pointer in Region.Base stays valid across Extend.
const DefaultCapacity = 1 << 31 // 2GiB, matches spec.md's "region is bounded (<= 2 GiB)"

// ErrExhausted is returned by Extend when growing the region would exceed
// its capacity. It is the one error condition blockheap is specified to
// recognize (spec.md §7).
var ErrExhausted = fmt.Errorf("region: exhausted")

// Region is a fixed-capacity, monotone-growth byte arena. The zero value
// is not usable; construct with New.
type Region struct {
	arena []byte
	brk   int // number of live bytes, always <= cap(arena)
}

// Option configures a Region at construction time.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity overrides DefaultCapacity. Capacity must be > 0.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// New allocates a Region backed by a capacity-byte arena. The arena is
// obtained via dirtmake.Bytes rather than make([]byte, n): a freshly
// created Region has no live blocks yet, so the bytes backing the unused
// portion of the arena need not be zeroed up front — the same reasoning
// real_memlib.c applies by layering mem_sbrk directly on sbrk instead of
// memset-ing the whole arena the way the teaching variant of memlib.c
// does.
func New(opts ...Option) (*Region, error) {
	o := options{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		return nil, fmt.Errorf("region: capacity must be positive, got %d", o.capacity)
	}
	return &Region{arena: dirtmake.Bytes(o.capacity, o.capacity)}, nil
}

// Extend grows the region by exactly n bytes and returns the offset at
// which the new bytes begin (the "old end" in spec.md's region_extend
// contract). It returns ErrExhausted, never partially extending, if doing
// so would exceed the region's capacity.
func (r *Region) Extend(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("region: negative extend %d", n)
	}
	if r.brk+n > cap(r.arena) {
		return 0, ErrExhausted
	}
	old := r.brk
	r.brk += n
	return old, nil
}

// Lo returns the offset of the first live byte. The region's base is
// always offset 0; Lo exists to mirror region_lo()'s place in spec.md §6.
func (r *Region) Lo() int { return 0 }

// Hi returns the offset of the last live byte, or -1 if the region has
// not been extended yet.
func (r *Region) Hi() int { return r.brk - 1 }

// Size returns the number of live bytes, Hi()-Lo()+1 (0 when empty).
func (r *Region) Size() int { return r.brk }

// Capacity returns the maximum number of bytes the region can grow to.
func (r *Region) Capacity() int { return cap(r.arena) }

// Bytes returns the live portion of the backing arena. Callers must not
// retain the slice across a call to Extend: growth never reallocates (the
// arena is fixed-capacity), but the length of the previously returned
// slice would be stale.
func (r *Region) Bytes() []byte { return r.arena[:r.brk] }

// Base returns a pointer to byte 0 of the backing arena. Valid for the
// lifetime of the Region: the arena is allocated once, at its full
// capacity, in New, so Extend never moves it.
func (r *Region) Base() *byte {
	if len(r.arena) == 0 {
		return nil
	}
	return &r.arena[0]
}

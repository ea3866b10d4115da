// Package malloc is the libc-shaped entry-point layer around blockheap:
// Malloc/Calloc/Free/Realloc over unsafe.Pointer, with lazy one-time
// initialization of a single process-wide Heap. It deliberately mirrors
// original_source/mymalloc/malloc_wrapper.c's shape — an `init()` guarded
// by a once-flag, thin pass-through functions, and an assertion (here, a
// panic) when the core reports out-of-memory — rather than introducing
// any policy of its own. spec.md §1 scopes this wrapper's *internal*
// design out of the core; it is kept here only so the module has a
// runnable, idiomatic entry point end to end.
package malloc

import (
	"sync"
	"unsafe"

	"github.com/blockheap/blockheap/blockheap"
	"github.com/blockheap/blockheap/region"
)

var (
	initOnce sync.Once
	heap     *blockheap.Heap
	base     *byte
)

func initialize() {
	initOnce.Do(func() {
		r, err := region.New()
		if err != nil {
			panic("malloc: " + err.Error())
		}
		h := blockheap.New(r)
		if err := h.Init(); err != nil {
			panic("malloc: " + err.Error())
		}
		heap = h
		base = r.Base()
	})
}

// toPointer converts a blockheap user-pointer offset to an absolute
// unsafe.Pointer relative to the region's backing arena.
func toPointer(offset int) unsafe.Pointer {
	if offset == blockheap.NullPtr {
		return nil
	}
	return unsafe.Add(unsafe.Pointer(base), offset)
}

// toOffset converts an absolute unsafe.Pointer back to a blockheap
// user-pointer offset.
func toOffset(p unsafe.Pointer) int {
	if p == nil {
		return blockheap.NullPtr
	}
	return int(uintptr(p) - uintptr(unsafe.Pointer(base)))
}

// Malloc allocates size bytes and returns a pointer to them. Panics if the
// simulated heap is exhausted, mirroring malloc_wrapper.c's assert(ptr)
// immediately after calling into my_malloc rather than handing a nil
// pointer back to the caller.
func Malloc(size uintptr) unsafe.Pointer {
	initialize()
	offset, ok := heap.Alloc(int(size))
	if !ok {
		panic("malloc: out of memory")
	}
	return toPointer(offset)
}

// Calloc allocates space for count objects of size bytes each, zeroed,
// mirroring malloc_wrapper.c's calloc (which always zero-fills, unlike
// Malloc — spec.md §1 scopes zeroing semantics to this wrapper, not the
// core). Panics if count*size overflows or the heap is exhausted, the
// same way malloc_wrapper.c asserts on a nil result.
func Calloc(count, size uintptr) unsafe.Pointer {
	total := count * size
	if count != 0 && total/count != size {
		panic("malloc: calloc size overflow")
	}
	p := Malloc(total) // panics on exhaustion, so p is never nil past this line
	if total > 0 {
		buf := unsafe.Slice((*byte)(p), total)
		for i := range buf {
			buf[i] = 0
		}
	}
	return p
}

// Free releases a block previously returned by Malloc/Calloc/Realloc.
// Tolerates nil.
func Free(p unsafe.Pointer) {
	if heap == nil || p == nil {
		return
	}
	heap.Free(toOffset(p))
}

// Realloc resizes a block in place when possible, copying otherwise.
// Returns nil only on exhaustion; callers that want malloc_wrapper.c's
// "assert on nil" behavior should check the result themselves — this
// package's Malloc/Calloc panic on exhaustion, but Realloc does not,
// since a failed grow must leave the original block untouched and alive
// (spec.md §7), which is still a usable (if unresized) result.
func Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	initialize()
	offset, ok := heap.Realloc(toOffset(p), int(size))
	if !ok {
		return nil
	}
	return toPointer(offset)
}

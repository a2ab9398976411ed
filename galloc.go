package galloc

import (
	"runtime"
	"unsafe"
)

// Alloc returns a 16-byte-aligned pointer to at least size bytes, or nil
// if size is zero or no arena can satisfy the request. It tries the
// caller's tcache first (no lock), then falls through to the pinned
// arena's free list and bump frontier.
func Alloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}

	need := neededTotal(size)
	st := currentState()

	if idx, ok := tcacheBinIndex(need - wordSize); ok {
		if hdr := st.tc.pop(idx); hdr != 0 {
			return unsafe.Pointer(payloadAddr(hdr))
		}
	}

	a := st.arena
	if a == nil || !a.usable {
		return nil
	}

	a.mu.Lock()
	hdr := a.allocLocked(need)
	a.mu.Unlock()

	if hdr == 0 {
		return nil
	}
	return unsafe.Pointer(payloadAddr(hdr))
}

// Free releases a pointer previously returned by Alloc. A nil pointer is
// a no-op; freeing anything else is undefined behavior and is not detected.
//
// A freed chunk is returned to the freeing goroutine's own pinned arena,
// not the allocating goroutine's. A pointer allocated on one goroutine and
// freed on another lands in whichever arena the freeing goroutine is
// pinned to, not the arena that actually owns the memory. Accepted here
// rather than paying for an owning-arena lookup on every free.
func Free(p unsafe.Pointer) {
	if p == nil {
		return
	}

	hdr := hdrFromPayload(uintptr(p))
	size := chunkSize(hdr)
	st := currentState()

	if idx, ok := tcacheBinIndex(size - wordSize); ok {
		if st.tc.push(idx, hdr) {
			return
		}
	}

	a := st.arena
	a.mu.Lock()
	a.freeLocked(hdr)
	a.mu.Unlock()
}

// New allocates a zeroed T and returns a pointer to it inside the
// allocator's arenas. Thin typed sugar over Alloc.
func New[T any]() *T {
	var zero T
	p := Alloc(unsafe.Sizeof(zero))
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), unsafe.Sizeof(zero)))
	return (*T)(p)
}

// NewUninitialized is New without zeroing; faster, contents undefined.
func NewUninitialized[T any]() *T {
	var zero T
	p := Alloc(unsafe.Sizeof(zero))
	if p == nil {
		return nil
	}
	return (*T)(p)
}

// NewSlice allocates n contiguous, zeroed Ts. Returns nil if n <= 0 or
// the allocation fails.
func NewSlice[T any](n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elemSize := unsafe.Sizeof(zero)
	p := Alloc(elemSize * uintptr(n))
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), elemSize*uintptr(n)))
	return unsafe.Slice((*T)(p), n)
}

// FreeValue releases a pointer obtained from New/NewUninitialized.
func FreeValue[T any](p *T) {
	Free(unsafe.Pointer(p))
}

// FreeSlice releases a slice obtained from NewSlice. Only the first
// element's address is meaningful to Free; s must not have been
// re-sliced past its original bounds.
func FreeSlice[T any](s []T) {
	if len(s) == 0 {
		return
	}
	Free(unsafe.Pointer(&s[0]))
}

// KeepAlive is runtime.KeepAlive, re-exported so callers threading raw
// pointers through unsafe code have an obvious place to pin the value
// that produced them alive across a GC point.
func KeepAlive(p any) {
	runtime.KeepAlive(p)
}

package galloc

import (
	"runtime"
	"unsafe"
)

// SingleArena is a single-region allocator: one mmap'd region (default
// SingleRegionSize, 1 GiB), no registry, no tcache sharding, just the
// chunk/free-list/coalescer machinery behind one mutex. Useful for a
// process that wants one predictable arena instead of the sharded
// multi-arena/tcache path the package-level Alloc/Free use.
type SingleArena struct {
	a *arena
}

// NewSingleArena maps a fresh region of size bytes (the configured
// default, SingleRegionSize unless overridden, if size is 0) and returns a
// ready-to-use single-arena allocator.
func NewSingleArena(size uintptr) (*SingleArena, error) {
	if size == 0 {
		size = singleRegionSize()
	}
	a, err := mapArena(size)
	if err != nil {
		return nil, err
	}
	return &SingleArena{a: a}, nil
}

// Alloc is SingleArena's alloc entry point: no tcache fast path, every
// call takes the arena lock.
func (s *SingleArena) Alloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	need := neededTotal(size)

	s.a.mu.Lock()
	hdr := s.a.allocLocked(need)
	s.a.mu.Unlock()

	if hdr == 0 {
		return nil
	}
	return unsafe.Pointer(payloadAddr(hdr))
}

// Free releases a pointer obtained from Alloc.
func (s *SingleArena) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	hdr := hdrFromPayload(uintptr(p))

	s.a.mu.Lock()
	s.a.freeLocked(hdr)
	s.a.mu.Unlock()
}

// Stats reports this arena's diagnostic snapshot.
func (s *SingleArena) Stats() ArenaStats {
	return s.a.stats()
}

// Generic typed sugar over SingleArena. Go methods can't take their own
// type parameters, so these are free functions taking *SingleArena
// instead of methods.

// SingleNew returns a zeroed *T allocated from s.
func SingleNew[T any](s *SingleArena) *T {
	var zero T
	p := s.Alloc(unsafe.Sizeof(zero))
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), unsafe.Sizeof(zero)))
	return (*T)(p)
}

// SingleNewUninitialized is SingleNew without zeroing.
func SingleNewUninitialized[T any](s *SingleArena) *T {
	var zero T
	p := s.Alloc(unsafe.Sizeof(zero))
	if p == nil {
		return nil
	}
	return (*T)(p)
}

// SingleNewSlice allocates n zeroed Ts from s.
func SingleNewSlice[T any](s *SingleArena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elemSize := unsafe.Sizeof(zero)
	p := s.Alloc(elemSize * uintptr(n))
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), elemSize*uintptr(n)))
	return unsafe.Slice((*T)(p), n)
}

// SingleFreeValue releases a pointer obtained from SingleNew/SingleNewUninitialized.
func SingleFreeValue[T any](s *SingleArena, p *T) {
	s.Free(unsafe.Pointer(p))
}

// SingleKeepAlive calls runtime.KeepAlive on s and returns t unchanged; thin re-export so callers
// threading unsafe pointers through s have an obvious pinning point.
func SingleKeepAlive[T any](s *SingleArena, t *T) *T {
	runtime.KeepAlive(s)
	return t
}

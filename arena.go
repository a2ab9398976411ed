// Package galloc implements a user-space malloc/free replacement backed by
// large anonymous OS mappings: boundary-tag chunks, a per-arena first-fit
// free list, bump-and-split carving, a per-goroutine tcache, and a small
// registry sharding arenas across callers.
package galloc

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"
)

// DefaultRegionSize is the size of each arena's initial mapping in the
// multi-arena configuration (64 MiB), overridable via config.go.
const DefaultRegionSize = 64 * 1024 * 1024

// SingleRegionSize is the mapping size used by the single-arena variant
// (1 GiB), see single.go.
const SingleRegionSize = 1 * 1024 * 1024 * 1024

// arena is a contiguous virtual-memory region carved into chunks. It owns
// a bump frontier, a free list, and a mutex. Arenas are never released
// during the process lifetime.
type arena struct {
	mu sync.Mutex

	mem []byte // mmap'd backing store; never unmapped, its length is the mapped size

	base uintptr
	bump uintptr
	end  uintptr

	freeHead uintptr // header address of the free-list head, or 0 for none

	usable bool // false if the initial mapping failed
}

// mapArena obtains a fresh anonymous, private, read/write mapping of at
// least size bytes (rounded up to a page) and returns an empty arena over
// it.
func mapArena(size uintptr) (*arena, error) {
	page := uintptr(syscall.Getpagesize())
	size = (size + page - 1) &^ (page - 1)

	mem, err := syscall.Mmap(-1, 0, int(size),
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_ANON|syscall.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("galloc: mmap %d bytes: %w", size, err)
	}

	raw := uintptr(unsafe.Pointer(&mem[0]))
	// The first chunk's header never sits at raw itself: carveFromTop
	// aligns the payload up to 16 and steps back one word, and raw is
	// already 16-aligned (page-aligned), so that step always lands one
	// word short. Folding the same computation into base makes base a
	// fixed point: carving the very first chunk against an empty arena
	// produces hdr == base exactly, so a fully-drained arena's bump can
	// retract all the way back to base instead of stalling one word short.
	base := align16(raw+wordSize) - wordSize
	debugLog("mapped arena base=%#x size=%d", base, size)

	return &arena{
		mem:    mem,
		base:   base,
		bump:   base,
		end:    raw + uintptr(len(mem)),
		usable: true,
	}, nil
}

// carveFromTop extends the bump frontier to satisfy a need-byte chunk:
// align the next payload position up to 16, step back one word for the
// header address, and check need bytes remain before end.
func (a *arena) carveFromTop(need uintptr) uintptr {
	payload := align16(a.bump + wordSize)
	hdr := payload - wordSize
	if hdr+need > a.end {
		return 0
	}
	// The chunk immediately left of a freshly carved chunk is always in
	// use (§4.2): either it is the previous carve, or this is the first
	// chunk of the arena and there is no left neighbor to look at.
	storeWord(hdr, (need&^alignMask)|flagPrevInUse)
	a.bump = hdr + need
	return hdr
}

// allocLocked is the slow, arena-lock-held allocation path: try the free
// list first, then carve from the bump frontier.
func (a *arena) allocLocked(need uintptr) uintptr {
	if hdr := a.tryFreeList(need); hdr != 0 {
		return hdr
	}
	return a.carveFromTop(need)
}

// freeLocked returns a previously allocated chunk to this arena: marks it
// free, writes its footer, coalesces with free neighbors, and either
// retracts the bump frontier or links the result into the free list.
func (a *arena) freeLocked(hdr uintptr) {
	size := chunkSize(hdr)
	setChunkHeader(hdr, size, true)
	writeFooter(hdr)

	hdr = a.coalesce(hdr)

	// Anything still short of the bump frontier here is a real carved
	// chunk (the frontier itself is handled by the retraction below), so
	// it is always safe to clear its PREV_IN_USE bit.
	if nextChunkHdr(hdr) < a.bump {
		setPrevInUse(nextChunkHdr(hdr), false)
	}

	if nextChunkHdr(hdr) == a.bump {
		a.bump = hdr
		return
	}
	a.linkFree(hdr)
}

// owns reports whether payload address p was carved out of this arena's
// mapped region. Nothing in the allocator calls it: neither Free nor
// SingleArena.Free consults it before returning a chunk to an arena.
func (a *arena) owns(p uintptr) bool {
	return p >= a.base && p < a.end
}

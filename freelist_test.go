package galloc

import "testing"

func TestFreeListLIFOOrder(t *testing.T) {
	a, err := mapArena(64 * 1024)
	if err != nil {
		t.Fatalf("mapArena: %v", err)
	}

	// Carve four chunks and free the first and the third so both land on
	// the free list (the in-use second chunk keeps them from coalescing,
	// and the in-use last one keeps the third from retracting into the
	// bump frontier), then confirm first-fit search sees the most recently
	// freed chunk first.
	need := neededTotal(32)
	a.mu.Lock()
	h1 := a.allocLocked(need)
	a.allocLocked(need) // keep h1 and h2 apart so freeing h2 doesn't merge into h1
	h2 := a.allocLocked(need)
	a.allocLocked(need) // keep h2's right neighbor in use so freeing h2 links it
	a.mu.Unlock()

	a.mu.Lock()
	a.freeLocked(h1)
	a.mu.Unlock()
	if a.freeHead != h1 {
		t.Fatalf("freeHead = %#x after freeing h1, want %#x", a.freeHead, h1)
	}

	a.mu.Lock()
	a.freeLocked(h2)
	a.mu.Unlock()
	if a.freeHead != h2 {
		t.Fatalf("freeHead = %#x after freeing h2, want %#x (LIFO)", a.freeHead, h2)
	}
}

func TestTryFreeListSplitsOversizedChunk(t *testing.T) {
	a, err := mapArena(64 * 1024)
	if err != nil {
		t.Fatalf("mapArena: %v", err)
	}

	big := neededTotal(256)
	a.mu.Lock()
	hBig := a.allocLocked(big)
	a.allocLocked(neededTotal(16)) // keep hBig's right neighbor in use
	a.freeLocked(hBig)
	a.mu.Unlock()

	small := neededTotal(32)
	a.mu.Lock()
	hdr := a.tryFreeList(small)
	a.mu.Unlock()

	if hdr != hBig {
		t.Fatalf("tryFreeList returned %#x, want the freed chunk %#x", hdr, hBig)
	}
	if chunkSize(hdr) != small {
		t.Errorf("split chunk size = %d, want %d", chunkSize(hdr), small)
	}
	remainder := nextChunkHdr(hdr)
	if !chunkIsFree(remainder) {
		t.Error("remainder after split should be free")
	}
	if chunkSize(remainder) != big-small {
		t.Errorf("remainder size = %d, want %d", chunkSize(remainder), big-small)
	}
}

func TestTryFreeListNoSplitWhenRemainderTooSmall(t *testing.T) {
	a, err := mapArena(64 * 1024)
	if err != nil {
		t.Fatalf("mapArena: %v", err)
	}

	exact := neededTotal(32)
	a.mu.Lock()
	h := a.allocLocked(exact)
	a.allocLocked(neededTotal(16))
	a.freeLocked(h)
	a.mu.Unlock()

	a.mu.Lock()
	got := a.tryFreeList(exact)
	a.mu.Unlock()

	if got != h {
		t.Fatalf("tryFreeList returned %#x, want %#x", got, h)
	}
	if chunkSize(got) != exact {
		t.Errorf("whole-chunk reuse changed size: got %d, want %d", chunkSize(got), exact)
	}
}

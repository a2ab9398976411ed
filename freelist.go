package galloc

// The arena free list is a doubly-linked LIFO chain of free chunks,
// anchored at a.freeHead. Links live in the first two payload words of
// each free chunk (fd/bk, see chunk.go) and are only meaningful while the
// chunk is on the list; once reallocated, those bytes become the
// caller's payload and are overwritten without ceremony.

// linkFree inserts hdr at the head of the free list.
func (a *arena) linkFree(hdr uintptr) {
	setChunkFd(hdr, a.freeHead)
	setChunkBk(hdr, 0)
	if a.freeHead != 0 {
		setChunkBk(a.freeHead, hdr)
	}
	a.freeHead = hdr
}

// unlinkFree removes hdr from the free list in place.
func (a *arena) unlinkFree(hdr uintptr) {
	prev := chunkBk(hdr)
	next := chunkFd(hdr)
	if prev != 0 {
		setChunkFd(prev, next)
	} else {
		a.freeHead = next
	}
	if next != 0 {
		setChunkBk(next, prev)
	}
	setChunkFd(hdr, 0)
	setChunkBk(hdr, 0)
}

// tryFreeList performs a first-fit scan of the free list for a chunk of
// at least need bytes. On a match it either splits off a reusable
// remainder (when the leftover is itself at least minChunk) or hands out
// the whole chunk. Returns 0 on a miss.
func (a *arena) tryFreeList(need uintptr) uintptr {
	for hdr := a.freeHead; hdr != 0; hdr = chunkFd(hdr) {
		size := chunkSize(hdr)
		if size < need {
			continue
		}

		a.unlinkFree(hdr)

		if size >= need+minChunk {
			// Split: hdr's own PREV_IN_USE is unchanged (its left
			// neighbor didn't move); the remainder's left neighbor is
			// now the in-use half, so its PREV_IN_USE is forced to 1.
			remainder := hdr + need
			remSize := size - need
			prevInUse := loadWord(hdr) & flagPrevInUse

			storeWord(hdr, (need&^alignMask)|prevInUse)
			storeWord(remainder, (remSize&^alignMask)|flagFree|flagPrevInUse)
			writeFooter(remainder)
			a.linkFree(remainder)
		} else {
			prevInUse := loadWord(hdr) & flagPrevInUse
			storeWord(hdr, (size&^alignMask)|prevInUse)

			if next := nextChunkHdr(hdr); next < a.bump {
				setPrevInUse(next, true)
			}
		}

		return hdr
	}
	return 0
}

package galloc

// coalesce fuses hdr with its immediate free neighbors, right then left,
// each at most once. The "no two adjacent free chunks" invariant held
// before this free, so a single pass in each direction suffices. Returns
// the (possibly lower) header address of the merged chunk. The caller
// holds the arena lock and has already marked hdr free and written its
// footer.
func (a *arena) coalesce(hdr uintptr) uintptr {
	// right must be a genuinely carved, free-list-linked chunk: anything
	// at or beyond the bump frontier carries a stale FREE bit from a
	// previous retraction (see freeLocked) but was never linked, so
	// unlinkFree on it would follow garbage fd/bk pointers.
	if right := nextChunkHdr(hdr); right < a.bump && chunkIsFree(right) {
		a.unlinkFree(right)

		newSize := chunkSize(hdr) + chunkSize(right)
		prevInUse := loadWord(hdr) & flagPrevInUse
		storeWord(hdr, (newSize&^alignMask)|flagFree|prevInUse)
		writeFooter(hdr)
	}

	if !chunkPrevInUse(hdr) {
		// Defence in depth: PREV_IN_USE said the left neighbor might be
		// free, but re-check its footer's FREE bit before trusting it.
		if footerIsFree(hdr) {
			leftSize := footerChunkSize(hdr)
			left := hdr - leftSize
			a.unlinkFree(left)

			newSize := leftSize + chunkSize(hdr)
			prevInUse := loadWord(left) & flagPrevInUse
			storeWord(left, (newSize&^alignMask)|flagFree|prevInUse)
			writeFooter(left)
			hdr = left
		}
	}

	return hdr
}

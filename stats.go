package galloc

// ArenaStats is a point-in-time, lock-acquiring snapshot of one arena:
// capacity is the mapped region size, and "in use" splits into bytes
// carved from the bump frontier versus bytes sitting on the free list.
type ArenaStats struct {
	Usable        bool
	MappedBytes   uint64
	CarvedBytes   uint64 // bump - base; includes both in-use and free-listed chunks
	FreeListBytes uint64
	FreeChunks    int
}

// stats walks the free list under the arena lock. Never called from the
// hot path. Purely diagnostic.
func (a *arena) stats() ArenaStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.usable {
		return ArenaStats{}
	}

	var freeBytes uint64
	var freeCount int
	for hdr := a.freeHead; hdr != 0; hdr = chunkFd(hdr) {
		freeBytes += uint64(chunkSize(hdr))
		freeCount++
	}

	return ArenaStats{
		Usable:        true,
		MappedBytes:   uint64(len(a.mem)),
		CarvedBytes:   uint64(a.bump - a.base),
		FreeListBytes: freeBytes,
		FreeChunks:    freeCount,
	}
}

// Snapshot is a diagnostic view across every live arena plus the calling
// goroutine's own tcache occupancy (other goroutines' tcaches are not
// observable without their cooperation).
type Snapshot struct {
	Arenas          []ArenaStats
	TcacheOccupancy [tcacheClasses]int
}

// Stats returns a Snapshot. Acquires every live arena's lock in turn; not
// for use on a hot path.
func Stats() Snapshot {
	initRegistry()

	snap := Snapshot{Arenas: make([]ArenaStats, globalRegistry.count)}
	for i := 0; i < globalRegistry.count; i++ {
		snap.Arenas[i] = globalRegistry.arenas[i].stats()
	}

	if st := pinned.Get(); st != nil {
		for i := range st.tc.bins {
			snap.TcacheOccupancy[i] = st.tc.bins[i].count
		}
	}

	return snap
}

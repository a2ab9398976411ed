package galloc

import (
	"runtime"
	"sync"

	"github.com/timandy/routine"
)

// registryCapacity bounds the process-wide arena table.
const registryCapacity = 64

// registry is the process-wide arena table. It is sized once, at first
// use, to the detected hardware parallelism (clamped to its capacity).
type registry struct {
	once   sync.Once
	arenas [registryCapacity]*arena
	count  int
}

var globalRegistry registry

// callerState is one goroutine-local-storage slot holding both the
// caller's pinned arena and its tcache, the Go analogue of a single
// pthread_key_t slot holding one per-thread struct.
type callerState struct {
	arena *arena
	tc    tcache
}

// pinned backs callerState with github.com/timandy/routine's
// goroutine-local storage.
var pinned = routine.NewThreadLocal[*callerState]()

// initRegistry runs exactly once, idempotent and safe under concurrent
// first call: it queries hardware parallelism, clamps it to the table
// capacity (at least 1), and maps that many arenas.
func initRegistry() {
	globalRegistry.once.Do(func() {
		n := runtime.NumCPU()
		if n < 1 {
			n = 1
		}
		if n > registryCapacity {
			n = registryCapacity
		}

		size := regionSize()
		for i := 0; i < n; i++ {
			a, err := mapArena(size)
			if err != nil {
				debugLog("arena %d: mapping failed, marking unusable: %v", i, err)
				a = &arena{usable: false}
			}
			globalRegistry.arenas[i] = a
		}
		globalRegistry.count = n
	})
}

// currentState returns the calling goroutine's pinned arena/tcache slot,
// assigning one on first use by reducing the goroutine id modulo the
// live arena count.
func currentState() *callerState {
	initRegistry()

	if st := pinned.Get(); st != nil {
		return st
	}

	idx := int(uint64(routine.Goid()) % uint64(globalRegistry.count))
	st := &callerState{arena: globalRegistry.arenas[idx]}
	pinned.Set(st)
	return st
}

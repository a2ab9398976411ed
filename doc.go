// Package galloc implements a user-space malloc/free replacement.
//
// # Overview
//
// galloc carves memory out of large anonymous OS mappings ("arenas") using
// boundary-tag chunks, a first-fit free list, and bump allocation against
// an arena's unused tail. A small per-goroutine cache ("tcache") of
// recently freed chunks, quantized into 16-byte size classes, absorbs most
// alloc/free pairs without ever touching the free list or its lock. This
// is useful for:
//
//   - Workloads that allocate and free short-lived objects at high rates
//   - Code that wants predictable, GC-independent memory lifetime
//   - Interop with C-style APIs expecting raw pointers
//
// # Basic Usage
//
//	p := galloc.Alloc(64)
//	defer galloc.Free(p)
//
//	// Typed convenience layer
//	v := galloc.New[MyStruct]()
//	defer galloc.FreeValue(v)
//
//	s := galloc.NewSlice[int](100)
//	defer galloc.FreeSlice(s)
//
// # Concurrency
//
// Alloc and Free are safe to call from any number of goroutines. Each
// goroutine is pinned to one of a small, fixed number of arenas (sized to
// runtime.NumCPU() at first use) and keeps its own tcache; contention only
// shows up when two goroutines share an arena and both miss their tcache.
//
// # Single-arena Variant
//
// For callers that want one big region and no sharding, e.g. a single
// long-lived worker, or a test wanting a hermetic arena, SingleArena
// wraps the same chunk machinery behind one mutex:
//
//	a, err := galloc.NewSingleArena(0) // 0 => default 1 GiB region
//	if err != nil { ... }
//	p := a.Alloc(64)
//	defer a.Free(p)
//
// # Configuration
//
// LoadConfig reads a galloc.toml (region sizes, arena table capacity,
// tcache depth) before the first Alloc/Free of the process; GALLOC_* env
// vars override it. See config.go.
//
// # Diagnostics
//
// Stats returns a point-in-time snapshot of every live arena and the
// calling goroutine's tcache occupancy. Building with -tags galloc_debug
// additionally logs arena mapping events through zap.
package galloc

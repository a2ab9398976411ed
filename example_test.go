package galloc_test

import (
	"fmt"

	"github.com/galloc/galloc"
)

// Example demonstrates basic Alloc/Free usage.
func Example() {
	p := galloc.Alloc(64)
	defer galloc.Free(p)

	fmt.Println(p != nil)
	// Output:
	// true
}

// Example_typed demonstrates the generic typed convenience layer.
func Example_typed() {
	v := galloc.New[int]()
	defer galloc.FreeValue(v)
	*v = 42
	fmt.Println(*v)
	// Output:
	// 42
}

// ExampleSingleArena demonstrates the single-arena variant for callers
// that don't want registry/tcache sharding.
func ExampleSingleArena() {
	a, err := galloc.NewSingleArena(1 << 20)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	p := a.Alloc(128)
	defer a.Free(p)
	fmt.Println(p != nil)
	// Output:
	// true
}

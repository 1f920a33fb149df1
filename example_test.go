package hybrid_test

import (
	"fmt"

	"github.com/cgaebel/hybrid"
)

// Example demonstrates inline-first storage with heap spill.
func Example() {
	var buf [2]int
	a := hybrid.New(buf[:])
	for _, v := range []int{1, 2, 3, 4} {
		if err := a.Append(v); err != nil {
			panic(err)
		}
	}

	s := a.Stats()
	fmt.Println(a.Len(), s.InlineLen, s.HeapLen)

	v, _ := a.RemoveLast()
	fmt.Println(v)
	// Output:
	// 4 2 2
	// 4
}

// ExampleArray_Normalize shows collapsing both segments into one
// contiguous block for bulk interop.
func ExampleArray_Normalize() {
	var buf [2]string
	a := hybrid.New(buf[:])
	for _, v := range []string{"a", "b", "c"} {
		if err := a.Append(v); err != nil {
			panic(err)
		}
	}

	view, _ := a.Normalize()
	fmt.Println(view)
	// Output: [a b c]
}

// ExampleArray_UnorderedRemove shows the order-for-speed trade of
// unordered removal.
func ExampleArray_UnorderedRemove() {
	a := hybrid.New[int](nil)
	for _, v := range []int{1, 2, 3} {
		if err := a.Append(v); err != nil {
			panic(err)
		}
	}

	v, _ := a.UnorderedRemove(0)
	fmt.Println(v)
	a.ForEach(func(_ int, e *int) bool {
		fmt.Println(*e)
		return true
	})
	// Output:
	// 1
	// 3
	// 2
}

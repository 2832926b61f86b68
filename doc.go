// Package vector implements a resizable array with explicit control over
// storage and element lifetimes.
//
// # Overview
//
// A Vector keeps its elements in a RawBuffer, a block of slots that is
// allocated separately from the elements living in it. The vector tracks
// how many slots hold live elements and runs construction, copying, moving
// and destruction as distinct, explicit steps. This makes it suitable for
// elements that own resources or whose copies can fail:
//
//   - Element types that must release handles when removed
//   - Values whose copy or move can return an error
//   - Code that needs predictable growth and exact capacity control
//
// # Basic Usage
//
//	v := vector.New[int]()
//	defer v.Release() // Destroy elements and free storage
//
//	// Append elements; capacity doubles as needed (1, 2, 4, 8, ...)
//	for i := 0; i < 10; i++ {
//		if err := v.PushBack(i); err != nil {
//			return err
//		}
//	}
//
//	// Insert and erase at arbitrary positions
//	pos, err := v.Insert(2, 99)
//	pos, err = v.Erase(pos)
//
//	// Iterate over live elements
//	for i, p := range v.All() {
//		fmt.Println(i, *p)
//	}
//
// # Element Lifetimes
//
// Types that need more than Go's default value semantics implement hooks on
// their pointer type: Initializer, Copier, CopyAssigner, Mover,
// MoveAssigner and Destroyer. Types implementing none of them behave like
// plain values: the zero value is the default, assignment copies, and a
// move relocates the value and zeroes the source.
//
// When storage is reallocated, elements are moved if their move cannot fail
// (no Mover, or a Mover that is also a NonFailingMover) or if they cannot
// be copied (NonCopyable). Otherwise they are copied, so that a failing
// element leaves the original storage untouched.
//
// # Failure Guarantees
//
// Construction, Clone, Reserve, and any PushBack, EmplaceBack, Emplace or
// Insert that reallocates leave the vector unchanged when they return an
// error. CopyFrom does too when rhs does not fit in the current capacity.
// In-place Emplace, Insert and Erase, as well as in-place CopyFrom, may
// leave the vector partly updated, but always valid.
//
// Out-of-range indexes and positions, and PopBack on an empty vector, are
// programming errors and panic.
//
// # Important Notes
//
//   - A Vector is not safe for concurrent use
//   - Pointers and slices into a vector are invalidated by any call that
//     reallocates or shifts elements
//   - A Vector must not be copied by value; use Clone, Take or Swap
//
// # Metrics and Monitoring
//
// Every vector keeps lifetime counters:
//
//	stats := v.Stats()
//	fmt.Printf("Utilization: %.2f%%\n", stats.Utilization*100)
//	fmt.Printf("Reallocations: %d\n", stats.Reallocations)
//
// Prometheus collectors can be attached with WithMetrics.
package vector

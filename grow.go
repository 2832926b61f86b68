package vector

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reserve ensures capacity for at least n elements. If storage has to be
// reallocated and an element fails to transfer, v is left unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.buf.Cap() {
		return nil
	}
	nb, err := NewRawBuffer[T](n)
	if err != nil {
		return v.fail("reserve", err)
	}
	if err := v.relocate(nb.Offset(0), v.live()); err != nil {
		nb.Release()
		return v.fail("reserve", err)
	}
	v.adopt(nb, v.n)
	return nil
}

// EnsureCapacity ensures room for extra more elements without reallocating.
func (v *Vector[T]) EnsureCapacity(extra int) error {
	if extra < 0 {
		panic(fmt.Sprintf("vector: negative extra capacity %d", extra))
	}
	return v.Reserve(v.n + extra)
}

// Resize changes the number of elements to n. Shrinking destroys the tail;
// growing default-constructs new elements at the end. If a new element fails
// to construct, the ones added so far are destroyed and Len is unchanged,
// although the capacity may have grown.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vector: negative size %d", n))
	}
	switch {
	case n < v.n:
		v.destroySlots(v.buf.Offset(n)[:v.n-n])
	case n > v.n:
		if err := v.Reserve(n); err != nil {
			return err
		}
		if err := v.constructRun(v.buf.Offset(v.n)[:n-v.n], nil); err != nil {
			return v.fail("resize", err)
		}
	}
	v.n = n
	return nil
}

// PushBack appends a copy of value.
func (v *Vector[T]) PushBack(value T) error {
	_, err := v.EmplaceBack(func(p *T) error {
		return v.traits().copyConstruct(p, &value)
	})
	return err
}

// PushBackMove appends src by moving it. src stays live in its moved-from state.
func (v *Vector[T]) PushBackMove(src *T) error {
	_, err := v.EmplaceBack(func(p *T) error {
		return v.traits().moveConstruct(p, src)
	})
	return err
}

// EmplaceBack constructs a new element at the end with init, or with the
// default constructor when init is nil, and returns a pointer to it.
//
// When v is full the storage doubles. The new element is built in the new
// buffer before the existing ones are transferred, so any failure leaves v
// unchanged.
func (v *Vector[T]) EmplaceBack(init func(*T) error) (*T, error) {
	if v.n < v.buf.Cap() {
		p := v.buf.Slot(v.n)
		if err := v.construct(p, init); err != nil {
			return nil, v.fail("emplace", errors.Wrapf(err, "construct element %d", v.n))
		}
		v.n++
		return p, nil
	}
	if err := v.emplaceRealloc(v.n, init); err != nil {
		return nil, err
	}
	return v.buf.Slot(v.n - 1), nil
}

// PopBack destroys the last element. It panics if v is empty.
func (v *Vector[T]) PopBack() {
	if v.n == 0 {
		panic("vector: PopBack on empty vector")
	}
	v.destroySlots(v.buf.Offset(v.n - 1)[:1])
	v.n--
}

// Emplace constructs a new element at pos with init, or with the default
// constructor when init is nil, shifting later elements right. It returns
// the position of the new element. pos must be in [0, Len()].
//
// When storage has to be reallocated, a failure leaves v unchanged. When
// elements are shifted in place, a failure part way leaves v valid but with
// some elements already shifted.
func (v *Vector[T]) Emplace(pos int, init func(*T) error) (int, error) {
	v.checkPosition(pos)
	switch {
	case v.n == v.buf.Cap():
		if err := v.emplaceRealloc(pos, init); err != nil {
			return pos, err
		}
	case pos == v.n:
		if _, err := v.EmplaceBack(init); err != nil {
			return pos, err
		}
	default:
		if err := v.emplaceShift(pos, init); err != nil {
			return pos, err
		}
	}
	return pos, nil
}

// Insert inserts a copy of value at pos and returns its position.
func (v *Vector[T]) Insert(pos int, value T) (int, error) {
	return v.Emplace(pos, func(p *T) error {
		return v.traits().copyConstruct(p, &value)
	})
}

// InsertMove moves src into a new element at pos and returns its position.
// src may refer to an element of v.
func (v *Vector[T]) InsertMove(pos int, src *T) (int, error) {
	return v.Emplace(pos, func(p *T) error {
		return v.traits().moveConstruct(p, src)
	})
}

// Erase removes the element at pos, shifting later elements left, and
// returns pos, which now holds the element that followed the removed one
// or equals Len(). pos must be in [0, Len()).
func (v *Vector[T]) Erase(pos int) (int, error) {
	v.checkIndex(pos)
	return v.EraseRange(pos, pos+1)
}

// EraseRange removes the elements in [first, last) and returns first.
func (v *Vector[T]) EraseRange(first, last int) (int, error) {
	v.checkPosition(first)
	v.checkPosition(last)
	if first > last {
		panic(fmt.Sprintf("vector: invalid range [%d, %d)", first, last))
	}
	if first == last {
		return first, nil
	}
	ops := v.traits()
	slots := v.live()
	gap := last - first
	for i := last; i < v.n; i++ {
		if err := ops.moveAssign(&slots[i-gap], &slots[i]); err != nil {
			return first, v.fail("erase", errors.Wrapf(err, "shift element %d", i))
		}
		v.stats.moved++
	}
	v.destroySlots(slots[v.n-gap:])
	v.n -= gap
	return first, nil
}

// emplaceShift inserts at pos < Len() using spare capacity. The new value
// is built in a temporary first, so init may read elements of v.
func (v *Vector[T]) emplaceShift(pos int, init func(*T) error) error {
	ops := v.traits()
	var tmp T
	if err := v.construct(&tmp, init); err != nil {
		return v.fail("emplace", errors.Wrapf(err, "construct element %d", pos))
	}

	slots := v.buf.Offset(0)
	if err := ops.moveConstruct(&slots[v.n], &slots[v.n-1]); err != nil {
		clearSlot(&slots[v.n])
		v.destroy(&tmp)
		return v.fail("emplace", errors.Wrapf(err, "shift element %d", v.n-1))
	}
	v.stats.moved++
	v.n++

	// Move backward so no element is read after being overwritten.
	for i := v.n - 2; i > pos; i-- {
		if err := ops.moveAssign(&slots[i], &slots[i-1]); err != nil {
			v.destroy(&tmp)
			return v.fail("emplace", errors.Wrapf(err, "shift element %d", i-1))
		}
		v.stats.moved++
	}
	err := ops.moveAssign(&slots[pos], &tmp)
	v.destroy(&tmp)
	if err != nil {
		return v.fail("emplace", errors.Wrapf(err, "place element %d", pos))
	}
	v.stats.moved++
	return nil
}

// emplaceRealloc inserts at pos into a new buffer of twice the capacity.
// The new element is constructed first, then the prefix and suffix are
// transferred around it. The old buffer is only torn down once everything
// has succeeded.
func (v *Vector[T]) emplaceRealloc(pos int, init func(*T) error) error {
	nb, err := NewRawBuffer[T](growCap(v.buf.Cap()))
	if err != nil {
		return v.fail("emplace", err)
	}
	slots := nb.Offset(0)
	if err := v.construct(&slots[pos], init); err != nil {
		nb.Release()
		return v.fail("emplace", errors.Wrapf(err, "construct element %d", pos))
	}
	old := v.live()
	if err := v.relocate(slots[:pos], old[:pos]); err != nil {
		v.destroySlots(slots[pos : pos+1])
		nb.Release()
		return v.fail("emplace", err)
	}
	if err := v.relocate(slots[pos+1:v.n+1], old[pos:]); err != nil {
		v.destroySlots(slots[:pos+1])
		nb.Release()
		return v.fail("emplace", err)
	}
	v.adopt(nb, v.n+1)
	return nil
}

// relocate transfers src into the unused slots dst, moving when the element
// type's move cannot fail or when it cannot be copied, and copying
// otherwise. On failure the slots already filled in dst are destroyed. src
// is unchanged on failure unless relocation was by a failing move.
func (v *Vector[T]) relocate(dst, src []T) error {
	if len(src) == 0 {
		return nil
	}
	ops := v.traits()
	mode, transfer := "copy", ops.copyConstruct
	if ops.preferMove() {
		mode, transfer = "move", ops.moveConstruct
	}
	for i := range src {
		if err := transfer(&dst[i], &src[i]); err != nil {
			clearSlot(&dst[i])
			v.destroySlots(dst[:i])
			return errors.Wrapf(err, "%s element %d", mode, i)
		}
	}
	if mode == "move" {
		v.stats.moved += len(src)
	} else {
		v.stats.copied += len(src)
	}
	v.opts.metrics.observeTransfers(v.opts.name, mode, len(src))
	return nil
}

// adopt replaces the storage with nb, which already holds n live elements.
func (v *Vector[T]) adopt(nb *RawBuffer[T], n int) {
	v.destroySlots(v.live())
	v.buf.Swap(nb)
	nb.Release()
	v.n = n
	v.stats.reallocations++
	v.opts.metrics.observeReallocation(v.opts.name)
	v.observeCapacity()
}

func growCap(c int) int {
	if c == 0 {
		return 1
	}
	return 2 * c
}

package vector

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"
)

// Vector is a resizable array that manages the lifetime of its elements
// explicitly. Elements [0, Len()) are live; the remaining slots up to Cap()
// are unused storage holding zero values.
//
// The zero value is an empty vector ready to use. A Vector must not be
// copied: use Clone, Take or Swap. It is not safe for concurrent use.
//
// Pointers and slices obtained from At, Data and the iterators are valid
// until the next call that reallocates or shifts elements.
type Vector[T any] struct {
	_     noCopy
	buf   RawBuffer[T]
	n     int
	ops   *traits[T]
	opts  options
	stats counters
}

// New returns an empty vector.
func New[T any](opts ...Option) *Vector[T] {
	return &Vector[T]{ops: newTraits[T](), opts: buildOptions(opts)}
}

// NewSized returns a vector holding n default-constructed elements, with
// capacity n. If an element fails to construct, the elements built so far
// are destroyed and no vector is returned.
func NewSized[T any](n int, opts ...Option) (*Vector[T], error) {
	if n < 0 {
		panic(fmt.Sprintf("vector: negative size %d", n))
	}
	v := New[T](opts...)
	nb, err := NewRawBuffer[T](n)
	if err != nil {
		return nil, v.fail("new", err)
	}
	if err := v.constructRun(nb.Offset(0)[:n], nil); err != nil {
		nb.Release()
		return nil, v.fail("new", err)
	}
	v.buf.Swap(nb)
	v.n = n
	v.observeCapacity()
	return v, nil
}

// Clone returns a copy of v with capacity equal to v.Len(). The copy shares
// v's options. If an element fails to copy, the copies made so far are
// destroyed and v is unaffected.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c := &Vector[T]{ops: v.traits(), opts: v.opts}
	nb, err := NewRawBuffer[T](v.n)
	if err != nil {
		return nil, v.fail("clone", err)
	}
	if err := c.copyRun(nb.Offset(0)[:v.n], v.live()); err != nil {
		nb.Release()
		return nil, v.fail("clone", err)
	}
	c.buf.Swap(nb)
	c.n = v.n
	c.observeCapacity()
	return c, nil
}

// CopyFrom replaces the contents of v with copies of rhs's elements.
//
// When rhs does not fit in v's capacity, the copy is built in a new buffer
// first and v is left untouched on failure. Otherwise existing elements are
// overwritten in place and a failure may leave v partly overwritten.
func (v *Vector[T]) CopyFrom(rhs *Vector[T]) error {
	if v == rhs {
		return nil
	}
	if rhs.n > v.buf.Cap() {
		nb, err := NewRawBuffer[T](rhs.n)
		if err != nil {
			return v.fail("copy", err)
		}
		if err := v.copyRun(nb.Offset(0)[:rhs.n], rhs.live()); err != nil {
			nb.Release()
			return v.fail("copy", err)
		}
		v.adopt(nb, rhs.n)
		return nil
	}

	ops := v.traits()
	common := min(v.n, rhs.n)
	dst, src := v.live(), rhs.live()
	for i := 0; i < common; i++ {
		if err := ops.copyAssign(&dst[i], &src[i]); err != nil {
			return v.fail("copy", errors.Wrapf(err, "assign element %d", i))
		}
		v.stats.copied++
	}
	if rhs.n < v.n {
		v.destroySlots(dst[rhs.n:])
	} else if rhs.n > v.n {
		if err := v.copyRun(v.buf.Offset(v.n)[:rhs.n-v.n], src[v.n:]); err != nil {
			return v.fail("copy", err)
		}
	}
	v.n = rhs.n
	return nil
}

// Take moves the contents of v into a new vector, leaving v empty with no
// capacity. It never fails.
func (v *Vector[T]) Take() *Vector[T] {
	c := &Vector[T]{ops: v.traits(), opts: v.opts}
	c.swapContents(v)
	v.observeCapacity()
	c.observeCapacity()
	return c
}

// MoveFrom destroys v's elements and takes over rhs's contents, leaving rhs
// empty with no capacity. It never fails.
func (v *Vector[T]) MoveFrom(rhs *Vector[T]) {
	if v == rhs {
		return
	}
	v.Release()
	v.swapContents(rhs)
	rhs.observeCapacity()
	v.observeCapacity()
}

// Swap exchanges the contents of v and other. Options stay with each vector.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.swapContents(other)
	other.observeCapacity()
	v.observeCapacity()
}

// Release destroys all elements and frees the storage. v remains usable as
// an empty vector.
func (v *Vector[T]) Release() {
	v.destroySlots(v.live())
	v.n = 0
	v.buf.Release()
	v.observeCapacity()
}

// Reset destroys all elements but keeps the storage for reuse.
func (v *Vector[T]) Reset() {
	v.destroySlots(v.live())
	v.n = 0
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.n
}

// Cap returns the number of slots backed by storage.
func (v *Vector[T]) Cap() int {
	return v.buf.Cap()
}

// IsEmpty reports whether v holds no elements.
func (v *Vector[T]) IsEmpty() bool {
	return v.n == 0
}

// At returns a pointer to the element at i.
func (v *Vector[T]) At(i int) *T {
	v.checkIndex(i)
	return v.buf.Slot(i)
}

// Get returns a plain Go copy of the element at i. The copy does not go
// through the element's Copier hook; use At to share the element instead.
func (v *Vector[T]) Get(i int) T {
	return *v.At(i)
}

// Set copy-assigns value to the element at i.
func (v *Vector[T]) Set(i int, value T) error {
	if err := v.traits().copyAssign(v.At(i), &value); err != nil {
		return v.fail("set", errors.Wrapf(err, "assign element %d", i))
	}
	v.stats.copied++
	return nil
}

// Front returns a pointer to the first element.
func (v *Vector[T]) Front() *T {
	return v.At(0)
}

// Back returns a pointer to the last element.
func (v *Vector[T]) Back() *T {
	return v.At(v.n - 1)
}

// Data returns the live elements as a slice sharing v's storage.
func (v *Vector[T]) Data() []T {
	return v.live()
}

// All iterates over the live elements in order, yielding their positions
// and pointers to them.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.buf.Slot(i)) {
				return
			}
		}
	}
}

// Backward iterates over the live elements in reverse order.
func (v *Vector[T]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := v.n - 1; i >= 0; i-- {
			if !yield(i, v.buf.Slot(i)) {
				return
			}
		}
	}
}

// Values iterates over the live elements in order, yielding plain Go copies.
// The copies do not go through the element's Copier hook, so element types
// that own resources should iterate with All.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(*v.buf.Slot(i)) {
				return
			}
		}
	}
}

func (v *Vector[T]) traits() *traits[T] {
	if v.ops == nil {
		v.ops = newTraits[T]()
	}
	return v.ops
}

func (v *Vector[T]) live() []T {
	return v.buf.slots[:v.n]
}

func (v *Vector[T]) swapContents(other *Vector[T]) {
	v.buf.Swap(&other.buf)
	v.n, other.n = other.n, v.n
}

func (v *Vector[T]) checkIndex(i int) {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("vector: index %d out of range [0, %d)", i, v.n))
	}
}

func (v *Vector[T]) checkPosition(pos int) {
	if pos < 0 || pos > v.n {
		panic(fmt.Sprintf("vector: position %d out of range [0, %d]", pos, v.n))
	}
}

// constructRun constructs every slot of dst with init, or the default
// constructor when init is nil. On failure the slots built so far are destroyed.
func (v *Vector[T]) constructRun(dst []T, init func(*T) error) error {
	for i := range dst {
		if err := v.construct(&dst[i], init); err != nil {
			v.destroySlots(dst[:i])
			return errors.Wrapf(err, "construct element %d", i)
		}
	}
	return nil
}

// copyRun copy-constructs src into the unused slots dst. On failure the
// copies made so far are destroyed.
func (v *Vector[T]) copyRun(dst, src []T) error {
	ops := v.traits()
	for i := range src {
		if err := ops.copyConstruct(&dst[i], &src[i]); err != nil {
			clearSlot(&dst[i])
			v.destroySlots(dst[:i])
			return errors.Wrapf(err, "copy element %d", i)
		}
		v.stats.copied++
	}
	return nil
}

func (v *Vector[T]) construct(p *T, init func(*T) error) error {
	if init == nil {
		init = v.traits().construct
	}
	if err := init(p); err != nil {
		clearSlot(p)
		return err
	}
	v.stats.constructed++
	return nil
}

func (v *Vector[T]) destroySlots(slots []T) {
	if len(slots) == 0 {
		return
	}
	for i := range slots {
		v.destroy(&slots[i])
	}
}

func (v *Vector[T]) destroy(p *T) {
	v.traits().destroy(p)
	v.stats.destroyed++
}

// fail records a failed operation and annotates err with it.
func (v *Vector[T]) fail(op string, err error) error {
	v.stats.failures++
	v.opts.metrics.observeFailure(v.opts.name, op)
	return errors.Wrapf(err, "vector: %s", op)
}

// clearSlot zeroes a slot whose construction failed.
func clearSlot[T any](p *T) {
	var zero T
	*p = zero
}

package vector

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/pkg/errors"
)

// maxAllocBytes bounds a single buffer: 128 TiB on 64-bit platforms, 2 GiB on 32-bit ones.
const maxAllocBytes = 1<<47*(bits.UintSize/64) + (1<<31-1)*(1-bits.UintSize/64)

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527 for details.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// RawBuffer owns a contiguous block of slots for elements of type T.
// It never constructs or destroys elements; which slots hold live values
// is tracked entirely by the owner. A RawBuffer must not be copied:
// use Take or Swap to move a block between buffers.
type RawBuffer[T any] struct {
	_     noCopy
	slots []T // nil iff capacity is zero
}

// NewRawBuffer allocates storage for capacity elements.
// A zero capacity yields an empty buffer without allocating.
func NewRawBuffer[T any](capacity int) (*RawBuffer[T], error) {
	slots, err := allocate[T](capacity)
	if err != nil {
		return nil, err
	}
	return &RawBuffer[T]{slots: slots}, nil
}

// Release drops the block. Element destructors are not run.
func (b *RawBuffer[T]) Release() {
	b.slots = nil
}

// Cap returns the number of slots the block holds.
func (b *RawBuffer[T]) Cap() int {
	return len(b.slots)
}

// SizeBytes returns the size of the block in bytes.
func (b *RawBuffer[T]) SizeBytes() int {
	var zero T
	return len(b.slots) * int(unsafe.Sizeof(zero))
}

// Offset returns the slots starting at offset. Offset(Cap()) is permitted
// and yields an empty view positioned one past the last slot.
func (b *RawBuffer[T]) Offset(offset int) []T {
	if offset < 0 || offset > len(b.slots) {
		panic(fmt.Sprintf("vector: buffer offset %d out of range [0, %d]", offset, len(b.slots)))
	}
	return b.slots[offset:]
}

// Slot returns the slot at index. The slot may not hold a live element.
func (b *RawBuffer[T]) Slot(index int) *T {
	if index < 0 || index >= len(b.slots) {
		panic(fmt.Sprintf("vector: buffer slot %d out of range [0, %d)", index, len(b.slots)))
	}
	return &b.slots[index]
}

// Swap exchanges blocks with other.
func (b *RawBuffer[T]) Swap(other *RawBuffer[T]) {
	b.slots, other.slots = other.slots, b.slots
}

// Take transfers ownership of the block to a new buffer, leaving b empty.
func (b *RawBuffer[T]) Take() *RawBuffer[T] {
	nb := &RawBuffer[T]{}
	nb.Swap(b)
	return nb
}

// allocate returns n zeroed slots, or ErrAllocation if the block cannot be obtained.
func allocate[T any](n int) (slots []T, err error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrAllocation, "negative capacity %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	var zero T
	if size := unsafe.Sizeof(zero); size > 0 && uint64(n) > uint64(maxAllocBytes)/uint64(size) {
		return nil, errors.Wrapf(ErrAllocation, "%d slots of %d bytes", n, size)
	}
	defer func() {
		// make panics with a runtime error when the runtime refuses the size.
		if r := recover(); r != nil {
			slots, err = nil, errors.Wrapf(ErrAllocation, "%d slots: %v", n, r)
		}
	}()
	return make([]T, n), nil
}

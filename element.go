package vector

// Element lifetime hooks. A Vector detects which of these interfaces *T
// implements the first time it touches an element; types implementing none
// of them behave like plain Go values.

// Initializer is implemented by element types whose default construction
// needs more than the zero value. Init is called on a zeroed slot.
type Initializer interface {
	Init() error
}

// Copier is implemented by element types with their own copy construction.
// CopyFrom is called on a zeroed slot.
type Copier[T any] interface {
	CopyFrom(src *T) error
}

// CopyAssigner is implemented by element types with their own copy assignment.
// AssignFrom is called on a live element.
type CopyAssigner[T any] interface {
	AssignFrom(src *T) error
}

// Mover is implemented by element types with their own move construction.
// MoveFrom is called on a zeroed slot and must leave src live, in a state
// that can still be destroyed.
type Mover[T any] interface {
	MoveFrom(src *T) error
}

// MoveAssigner is implemented by element types with their own move assignment.
type MoveAssigner[T any] interface {
	MoveAssignFrom(src *T) error
}

// NonFailingMover marks a Mover whose MoveFrom never returns an error.
type NonFailingMover interface {
	MoveNeverFails()
}

// NonCopyable marks element types that must never be copied.
type NonCopyable interface {
	DisallowCopy()
}

// Destroyer is implemented by element types that release resources when
// they are destroyed. The slot is zeroed after Destroy returns. Destroy is
// never called on a slot whose construction failed. Without a Mover, a
// moved-from element is the zero value, so Destroy must accept it.
type Destroyer interface {
	Destroy()
}

// traits holds the resolved lifetime operations for T.
type traits[T any] struct {
	construct     func(p *T) error
	copyConstruct func(dst, src *T) error
	copyAssign    func(dst, src *T) error
	moveConstruct func(dst, src *T) error
	moveAssign    func(dst, src *T) error
	destroy       func(p *T)

	moveNeverFails bool
	copyable       bool
}

// preferMove reports whether relocation during reallocation moves elements.
// Moving is chosen when it cannot fail or when copying is impossible;
// otherwise copying keeps the old buffer intact if an element fails.
func (t *traits[T]) preferMove() bool {
	return t.moveNeverFails || !t.copyable
}

func newTraits[T any]() *traits[T] {
	var probe any = (*T)(nil)
	t := &traits[T]{moveNeverFails: true, copyable: true}

	if _, ok := probe.(Destroyer); ok {
		t.destroy = func(p *T) {
			any(p).(Destroyer).Destroy()
			var zero T
			*p = zero
		}
	} else {
		t.destroy = func(p *T) {
			var zero T
			*p = zero
		}
	}

	if _, ok := probe.(Initializer); ok {
		t.construct = func(p *T) error { return any(p).(Initializer).Init() }
	} else {
		t.construct = func(*T) error { return nil }
	}

	if _, ok := probe.(NonCopyable); ok {
		t.copyable = false
		t.copyConstruct = func(_, _ *T) error { return ErrNotCopyable }
		t.copyAssign = t.copyConstruct
	} else {
		if _, ok := probe.(Copier[T]); ok {
			t.copyConstruct = func(dst, src *T) error { return any(dst).(Copier[T]).CopyFrom(src) }
		} else {
			t.copyConstruct = func(dst, src *T) error {
				*dst = *src
				return nil
			}
		}
		if _, ok := probe.(CopyAssigner[T]); ok {
			t.copyAssign = func(dst, src *T) error { return any(dst).(CopyAssigner[T]).AssignFrom(src) }
		} else {
			t.copyAssign = func(dst, src *T) error {
				var tmp T
				if err := t.copyConstruct(&tmp, src); err != nil {
					return err
				}
				t.destroy(dst)
				*dst = tmp
				return nil
			}
		}
	}

	if _, ok := probe.(Mover[T]); ok {
		_, t.moveNeverFails = probe.(NonFailingMover)
		t.moveConstruct = func(dst, src *T) error { return any(dst).(Mover[T]).MoveFrom(src) }
	} else {
		t.moveConstruct = func(dst, src *T) error {
			var zero T
			*dst, *src = *src, zero
			return nil
		}
	}
	if _, ok := probe.(MoveAssigner[T]); ok {
		t.moveAssign = func(dst, src *T) error { return any(dst).(MoveAssigner[T]).MoveAssignFrom(src) }
	} else {
		t.moveAssign = func(dst, src *T) error {
			var tmp T
			if err := t.moveConstruct(&tmp, src); err != nil {
				return err
			}
			t.destroy(dst)
			*dst = tmp
			return nil
		}
	}
	return t
}

package vector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// snapshot captures the observable state of a tracked vector.
type snapshot struct {
	len, cap int
	vals     []int
}

func snap(v *Vector[tracked]) snapshot {
	return snapshot{len: v.Len(), cap: v.Cap(), vals: trackedVals(v)}
}

// TestStrongGuaranteeOnReallocation makes the k-th copy fail during
// operations that reallocate and checks that nothing changed.
func TestStrongGuaranteeOnReallocation(t *testing.T) {
	ops := []struct {
		name string
		do   func(v *Vector[tracked], l *ledger) error
	}{
		{"Reserve", func(v *Vector[tracked], _ *ledger) error {
			return v.Reserve(16)
		}},
		{"PushBack", func(v *Vector[tracked], l *ledger) error {
			return v.PushBack(tracked{val: 99, l: l})
		}},
		{"EmplaceBack", func(v *Vector[tracked], l *ledger) error {
			_, err := v.EmplaceBack(func(p *tracked) error {
				*p = tracked{val: 99, l: l}
				l.live++
				return nil
			})
			return err
		}},
		{"Insert front", func(v *Vector[tracked], l *ledger) error {
			_, err := v.Insert(0, tracked{val: 99, l: l})
			return err
		}},
		{"Insert middle", func(v *Vector[tracked], l *ledger) error {
			_, err := v.Insert(2, tracked{val: 99, l: l})
			return err
		}},
		{"Insert end", func(v *Vector[tracked], l *ledger) error {
			_, err := v.Insert(4, tracked{val: 99, l: l})
			return err
		}},
		{"Resize", func(v *Vector[tracked], _ *ledger) error {
			return v.Resize(9)
		}},
	}

	for _, op := range ops {
		for k := 1; k <= 5; k++ {
			l := &ledger{}
			v := newTracked(t, l, 0, 1, 2, 3)
			before := snap(v)
			live := l.live
			l.failCopyAfter(k)

			err := op.do(v, l)
			if err == nil {
				// The failing copy was never reached.
				continue
			}
			require.ErrorIs(t, err, errBoom, "%s k=%d", op.name, k)
			require.Equal(t, before, snap(v), "%s k=%d", op.name, k)
			require.Equal(t, live, l.live, "%s k=%d leaked elements", op.name, k)
			require.Equal(t, 1, v.Stats().Failures)
			checkInvariant(t, v)
		}
	}
}

func TestReallocationCopiesWhenMoveMayFail(t *testing.T) {
	l := &ledger{}
	v := newTracked(t, l, 1, 2, 3)
	moves := l.moves
	require.NoError(t, v.Reserve(8))
	require.Equal(t, moves, l.moves, "a failing move must not be used for relocation")
	require.Equal(t, 3, v.Stats().Copied)
}

func TestReallocationMovesWhenMoveCannotFail(t *testing.T) {
	l := &ledger{}
	v := New[relocatable]()
	for i := 0; i < 5; i++ {
		require.NoError(t, v.PushBack(relocatable{val: i, l: l}))
	}
	require.Equal(t, 5, l.copies, "only the pushes copy")
	require.Equal(t, 1+2+4, l.moves)
	for i, p := range v.All() {
		require.Equal(t, i, p.val)
	}
}

func TestReallocationMovesNonCopyable(t *testing.T) {
	l := &ledger{}
	v := New[unique]()
	for i := 1; i <= 3; i++ {
		u := unique{id: i, l: l}
		require.NoError(t, v.PushBackMove(&u))
	}
	moves := l.moves
	require.NoError(t, v.Reserve(10))
	require.Equal(t, moves+3, l.moves)
}

func TestNonCopyableFailingMoveRollsBackNewBuffer(t *testing.T) {
	l := &ledger{}
	v := New[unique]()
	require.NoError(t, v.Reserve(3))
	for i := 1; i <= 3; i++ {
		u := unique{id: i, l: l}
		require.NoError(t, v.PushBackMove(&u))
	}

	l.failMoveAt = l.moves + 1
	err := v.Reserve(6)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 3, v.Cap())
	require.Equal(t, 3, v.Len())
	require.Equal(t, 1, v.Get(0).id, "nothing was moved before the failure")
}

func TestInPlaceInsertBasicGuarantee(t *testing.T) {
	l := &ledger{}
	v := newTracked(t, l, 0, 1, 2, 3)
	require.NoError(t, v.Reserve(8))

	// The new value and the shifted elements are built by moving.
	l.failMoveAt = l.moves + 3
	_, err := v.Insert(1, tracked{val: 99, l: l})
	require.ErrorIs(t, err, errBoom)

	// The vector is valid: every live element is accounted for.
	require.Equal(t, v.Len(), l.live)
	require.LessOrEqual(t, v.Len(), v.Cap())
	checkInvariant(t, v)
	v.Release()
	require.Zero(t, l.live)
}

func TestEraseBasicGuarantee(t *testing.T) {
	l := &ledger{}
	v := newTracked(t, l, 0, 1, 2, 3)

	l.failMoveAt = l.moves + 2
	pos, err := v.Erase(0)
	require.ErrorIs(t, err, errBoom)
	require.Zero(t, pos)
	require.Equal(t, 4, v.Len())
	require.Equal(t, v.Len(), l.live)
	v.Release()
	require.Zero(t, l.live)
}

func TestInPlaceConstructionFailure(t *testing.T) {
	v := fromInts(t, 1, 2, 3)

	_, err := v.EmplaceBack(func(p *int) error {
		*p = 42
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, []int{1, 2, 3}, v.Data())
	checkInvariant(t, v)

	_, err = v.Emplace(0, func(p *int) error { return errBoom })
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, []int{1, 2, 3}, v.Data())
}

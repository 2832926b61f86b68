package vector

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestVectorStats(t *testing.T) {
	v := New[int64]()

	// Test initial state
	s := v.Stats()
	require.Equal(t, Stats{}, s)
	require.Zero(t, v.Utilization())

	for i := 0; i < 5; i++ {
		require.NoError(t, v.PushBack(int64(i)))
	}

	s = v.Stats()
	require.Equal(t, 5, s.Len)
	require.Equal(t, 8, s.Cap)
	require.Equal(t, 40, s.SizeInUse)
	require.Equal(t, 64, s.SizeReserved)
	require.InDelta(t, 0.625, s.Utilization, 1e-9)
	require.Equal(t, 4, s.Reallocations)
	require.Equal(t, 5, s.Constructed)
	require.Equal(t, 1+2+4, s.Moved)
	require.Equal(t, 1+2+4, s.Destroyed)
	require.Equal(t, v.SizeInUse(), s.SizeInUse)
	require.Equal(t, v.SizeReserved(), s.SizeReserved)
	require.Equal(t, "len=5 cap=8 reallocations=4 moved=7 copied=0 destroyed=7", s.String())

	// Reset keeps capacity, so utilization drops to zero.
	v.Reset()
	require.Zero(t, v.Utilization())
	require.Equal(t, 64, v.SizeReserved())
	require.Zero(t, v.SizeInUse())
}

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	v := New[int](WithName("orders"), WithMetrics(m))
	for i := 0; i < 100; i++ {
		require.NoError(t, v.PushBack(i))
	}

	require.Equal(t, 8.0, testutil.ToFloat64(m.reallocations.WithLabelValues("orders")))
	require.Equal(t, 127.0, testutil.ToFloat64(m.transfers.WithLabelValues("orders", "move")))
	require.Equal(t, 128.0, testutil.ToFloat64(m.capacity.WithLabelValues("orders")))

	require.Error(t, v.Reserve(math.MaxInt))
	require.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("orders", "reserve")))

	v.Release()
	require.Zero(t, testutil.ToFloat64(m.capacity.WithLabelValues("orders")))

	// A second vector shares the collectors under its own label.
	l := &ledger{}
	w := New[tracked](WithName("ledger"), WithMetrics(m))
	for i := 0; i < 3; i++ {
		require.NoError(t, w.PushBack(tracked{val: i, l: l}))
	}
	require.Equal(t, 3.0, testutil.ToFloat64(m.transfers.WithLabelValues("ledger", "copy")))

	count, err := testutil.GatherAndCount(reg, "vector_reallocations_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// Handing storage between vectors republishes both gauges.
	a := New[int](WithName("a"), WithMetrics(m))
	for i := 0; i < 3; i++ {
		require.NoError(t, a.PushBack(i))
	}
	b := New[int](WithName("b"), WithMetrics(m))
	b.MoveFrom(a)
	require.Zero(t, testutil.ToFloat64(m.capacity.WithLabelValues("a")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.capacity.WithLabelValues("b")))

	c := New[int](WithName("c"), WithMetrics(m))
	c.Swap(b)
	require.Zero(t, testutil.ToFloat64(m.capacity.WithLabelValues("b")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.capacity.WithLabelValues("c")))

	d, err := c.Clone()
	require.NoError(t, err)
	require.Equal(t, 3.0, testutil.ToFloat64(m.capacity.WithLabelValues("c")))

	e := d.Take()
	require.Equal(t, 3, e.Cap())
	require.Equal(t, 3.0, testutil.ToFloat64(m.capacity.WithLabelValues("c")))
}

func TestInPlaceShiftStats(t *testing.T) {
	v := New[int]()
	for i := 0; i < 4; i++ {
		require.NoError(t, v.PushBack(i))
	}
	require.NoError(t, v.Reserve(8))
	before := v.Stats()

	_, err := v.Insert(1, 9)
	require.NoError(t, err)
	s := v.Stats()
	require.Equal(t, 1, s.Constructed-before.Constructed)
	require.Equal(t, 1, s.Destroyed-before.Destroyed, "the temporary must be counted")
	require.Equal(t, 4, s.Moved-before.Moved)
	require.Zero(t, s.Reallocations-before.Reallocations)

	_, err = v.Erase(0)
	require.NoError(t, err)
	require.Equal(t, 2, v.Stats().Destroyed-before.Destroyed)
	require.Equal(t, []int{9, 1, 2, 3}, v.Data())
}

func TestMetricsDefaultName(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	v := New[int](WithMetrics(m))
	require.NoError(t, v.PushBack(1))
	require.Equal(t, 1.0, testutil.ToFloat64(m.reallocations.WithLabelValues("default")))
}

package vector

import (
	"fmt"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
)

// counters are lifetime totals kept by each vector.
type counters struct {
	reallocations int
	constructed   int
	copied        int
	moved         int
	destroyed     int
	failures      int
}

// SizeInUse returns the number of bytes occupied by live elements.
func (v *Vector[T]) SizeInUse() int {
	var zero T
	return v.n * int(unsafe.Sizeof(zero))
}

// SizeReserved returns the number of bytes of storage held by v.
func (v *Vector[T]) SizeReserved() int {
	return v.buf.SizeBytes()
}

// Utilization returns the ratio of live elements to capacity (0.0 to 1.0).
// Returns 0.0 if v has no capacity.
func (v *Vector[T]) Utilization() float64 {
	c := v.buf.Cap()
	if c == 0 {
		return 0
	}
	return float64(v.n) / float64(c)
}

// Stats returns a snapshot of v's size and lifetime counters.
func (v *Vector[T]) Stats() Stats {
	return Stats{
		Len:           v.n,
		Cap:           v.buf.Cap(),
		SizeInUse:     v.SizeInUse(),
		SizeReserved:  v.SizeReserved(),
		Utilization:   v.Utilization(),
		Reallocations: v.stats.reallocations,
		Constructed:   v.stats.constructed,
		Copied:        v.stats.copied,
		Moved:         v.stats.moved,
		Destroyed:     v.stats.destroyed,
		Failures:      v.stats.failures,
	}
}

// Stats contains statistical information about a vector.
type Stats struct {
	Len          int     // Live elements
	Cap          int     // Slots backed by storage
	SizeInUse    int     // Bytes occupied by live elements
	SizeReserved int     // Bytes of storage
	Utilization  float64 // Ratio of Len to Cap (0.0-1.0)

	Reallocations int // Storage replacements
	Constructed   int // Elements built by default construction, init functions, PushBack or Insert
	Copied        int // Copy constructions and copy assignments
	Moved         int // Move constructions and move assignments
	Destroyed     int // Element destructions
	Failures      int // Operations that returned an error
}

func (v *Vector[T]) observeCapacity() {
	v.opts.metrics.observeCapacity(v.opts.name, v.buf.Cap())
}

// Metrics exports vector activity to Prometheus.
type Metrics struct {
	// reg is the Registerer used to create this set of metrics.
	reg prometheus.Registerer

	reallocations *prometheus.CounterVec
	transfers     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	capacity      *prometheus.GaugeVec
}

// NewMetrics creates a new set of metrics. Metrics will be registered to reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	var m Metrics
	m.reg = reg

	m.reallocations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vector",
		Name:      "reallocations_total",
		Help:      "Total number of times a vector replaced its storage",
	}, []string{"vector"})

	m.transfers = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vector",
		Name:      "element_transfers_total",
		Help:      "Total number of elements relocated into new storage, by move or copy",
	}, []string{"vector", "mode"})

	m.failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vector",
		Name:      "failed_operations_total",
		Help:      "Total number of vector operations that returned an error",
	}, []string{"vector", "op"})

	m.capacity = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vector",
		Name:      "capacity_slots",
		Help:      "Number of element slots currently backed by storage",
	}, []string{"vector"})

	reg.MustRegister(m.reallocations, m.transfers, m.failures, m.capacity)
	return &m
}

func (m *Metrics) observeCapacity(name string, capacity int) {
	if m == nil {
		return
	}
	m.capacity.WithLabelValues(name).Set(float64(capacity))
}

func (m *Metrics) observeReallocation(name string) {
	if m == nil {
		return
	}
	m.reallocations.WithLabelValues(name).Inc()
}

func (m *Metrics) observeTransfers(name, mode string, n int) {
	if m == nil {
		return
	}
	m.transfers.WithLabelValues(name, mode).Add(float64(n))
}

func (m *Metrics) observeFailure(name, op string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(name, op).Inc()
}

// String renders the snapshot on one line.
func (s Stats) String() string {
	return fmt.Sprintf("len=%d cap=%d reallocations=%d moved=%d copied=%d destroyed=%d",
		s.Len, s.Cap, s.Reallocations, s.Moved, s.Copied, s.Destroyed)
}

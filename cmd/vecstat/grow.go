package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/pavanmanishd/vector"
)

// growCommand appends elements one at a time and prints every capacity change.
type growCommand struct {
	count *int
	elem  *string
}

func (cmd *growCommand) run(_ *kingpin.ParseContext) error {
	reg := prometheus.NewRegistry()
	m := vector.NewMetrics(reg)

	var (
		stats vector.Stats
		err   error
	)
	switch *cmd.elem {
	case "int":
		stats, err = growVector(*cmd.count, m, func(i int) int64 { return int64(i) })
	case "string":
		stats, err = growVector(*cmd.count, m, strconv.Itoa)
	default:
		return fmt.Errorf("unknown element type %q", *cmd.elem)
	}
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "grow finished", "elements", stats.Len, "reallocations", stats.Reallocations)

	printStats(stats)
	return printMetrics(reg)
}

func growVector[T any](n int, m *vector.Metrics, gen func(int) T) (vector.Stats, error) {
	v := vector.New[T](vector.WithName("grow"), vector.WithMetrics(m))
	defer v.Release()

	color.New(color.Bold).Println("Capacity transitions:")
	last := v.Cap()
	for i := 0; i < n; i++ {
		if err := v.PushBack(gen(i)); err != nil {
			return vector.Stats{}, fmt.Errorf("push element %d: %w", i, err)
		}
		if c := v.Cap(); c != last {
			fmt.Printf("\tlen %d: cap %d -> %d (%s reserved)\n", v.Len(), last, c, humanize.IBytes(uint64(v.SizeReserved())))
			last = c
		}
	}
	return v.Stats(), nil
}

func printStats(s vector.Stats) {
	color.New(color.Bold).Println("Vector:")
	fmt.Printf("\tlen: %d, cap: %d, utilization: %.1f%%\n", s.Len, s.Cap, s.Utilization*100)
	fmt.Printf("\tin use: %s, reserved: %s\n", humanize.IBytes(uint64(s.SizeInUse)), humanize.IBytes(uint64(s.SizeReserved)))
	fmt.Printf(
		"\treallocations: %d, constructed: %d, moved: %d, copied: %d, destroyed: %d, failures: %d\n",
		s.Reallocations, s.Constructed, s.Moved, s.Copied, s.Destroyed, s.Failures,
	)
}

func printMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	color.New(color.Bold).Println("Metrics:")
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			value := metric.GetCounter().GetValue()
			if mf.GetType() == dto.MetricType_GAUGE {
				value = metric.GetGauge().GetValue()
			}
			fmt.Printf("\t%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
	return nil
}

func addGrowCommand(app *kingpin.Application) {
	cmd := &growCommand{}
	grow := app.Command("grow", "Append elements and report capacity growth.").Action(cmd.run)
	cmd.count = grow.Flag("count", "Number of elements to append.").Default("1000").Int()
	cmd.elem = grow.Flag("elem", "Element type to store.").Default("int").Enum("int", "string")
}

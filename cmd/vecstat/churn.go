package main

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/vector"
)

// churnCommand runs a random workload against a vector and a slice model.
type churnCommand struct {
	ops    *int
	seed   *int64
	maxLen *int
}

func (cmd *churnCommand) run(_ *kingpin.ParseContext) error {
	reg := prometheus.NewRegistry()
	v := vector.New[int](vector.WithName("churn"), vector.WithMetrics(vector.NewMetrics(reg)))
	defer v.Release()

	if err := churn(v, *cmd.ops, *cmd.seed, *cmd.maxLen); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "churn finished", "ops", *cmd.ops, "seed", *cmd.seed, "len", v.Len(), "cap", v.Cap())

	printStats(v.Stats())
	return printMetrics(reg)
}

// churn applies ops random mutations to v and to a slice, and returns an
// error at the first step where they disagree.
func churn(v *vector.Vector[int], ops int, seed int64, maxLen int) error {
	rng := rand.New(rand.NewSource(seed))
	var model []int

	for step := 0; step < ops; step++ {
		var (
			name string
			err  error
		)
		switch op := rng.Intn(5); {
		case len(model) == 0 || (op == 0 && len(model) < maxLen):
			name = "push"
			x := rng.Int()
			err = v.PushBack(x)
			model = append(model, x)
		case op == 1 && len(model) < maxLen:
			name = "insert"
			pos, x := rng.Intn(len(model)+1), rng.Int()
			_, err = v.Insert(pos, x)
			model = slices.Insert(model, pos, x)
		case op == 2:
			name = "erase"
			pos := rng.Intn(len(model))
			_, err = v.Erase(pos)
			model = slices.Delete(model, pos, pos+1)
		case op == 3:
			name = "resize"
			n := rng.Intn(maxLen + 1)
			err = v.Resize(n)
			if n < len(model) {
				model = model[:n]
			} else {
				model = append(model, make([]int, n-len(model))...)
			}
		default:
			name = "pop"
			v.PopBack()
			model = model[:len(model)-1]
		}
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", step, name, err)
		}
		if !slices.Equal(model, v.Data()) {
			return fmt.Errorf("step %d (%s): vector diverged from model at len %d", step, name, len(model))
		}
	}
	return nil
}

func addChurnCommand(app *kingpin.Application) {
	cmd := &churnCommand{}
	c := app.Command("churn", "Run random mutations and check them against a slice.").Action(cmd.run)
	cmd.ops = c.Flag("ops", "Number of operations to run.").Default("10000").Int()
	cmd.seed = c.Flag("seed", "Random seed.").Default("1").Int64()
	cmd.maxLen = c.Flag("max-len", "Upper bound on the vector length.").Default("256").Int()
}

// Command vecstat exercises vector growth and mutation patterns and prints
// the resulting lifetime counters and metrics.
package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

func main() {
	app := kingpin.New("vecstat", "Exercise vector growth and mutation patterns.")
	addGrowCommand(app)
	addChurnCommand(app)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		level.Error(logger).Log("msg", "command failed", "err", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/kshedden/cointoss/mixlib"
)

const usage = `usage: estimate [flags] [observation file] [state] [iteration]
       state can be either uniform or random
`

// The number of updates performed before each report.  With the
// default settings these are applied cumulatively, so the reports
// follow 10, 35 and 85 updates in total.
var checkpoints = []int{10, 25, 50}

// report writes one checkpoint line.  Values are printed with 12
// significant digits.
func report(out io.Writer, k int, par mixlib.Params, first bool) {
	if first {
		fmt.Fprintf(out, "Iteration: %d p: %.12g, p1: %.12g, p2:%.12g\n", k, par.P, par.P1, par.P2)
		return
	}
	fmt.Fprintf(out, "Iteration: %d p: %.12g, p1:%.12g, p2:%.12g\n", k, par.P, par.P1, par.P2)
}

func run(args []string, out io.Writer) int {

	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	fs.SetOutput(out)
	logname := fs.String("logname", "estimate", "Prefix of log files, if empty log to stderr")
	seed := fs.Int64("seed", 0, "Seed for random initialization, 0 uses the clock")
	progress := fs.Bool("progress", false, "Display a progress bar while fitting")
	restart := fs.Bool("restart", false, "Start every checkpoint from the initial parameters")
	if err := fs.Parse(args); err != nil {
		_, _ = io.WriteString(out, usage)
		return 1
	}

	if fs.NArg() < 2 {
		_, _ = io.WriteString(out, usage)
		return 1
	}
	fname := fs.Arg(0)

	state, err := mixlib.ParseInitState(fs.Arg(1))
	if err != nil {
		_, _ = io.WriteString(out, usage)
		return 1
	}

	obs, err := mixlib.ReadObs(fname)
	if err != nil {
		panic(err)
	}

	mix := mixlib.New(obs)
	mix.Progress = *progress
	if *logname != "" {
		mix.SetLogger(*logname)
	}
	mix.Initialize()
	logger := mix.Logger()

	// The iteration count is accepted for compatibility, the
	// checkpoints are fixed.
	if fs.NArg() > 2 {
		logger.Printf("Ignoring iteration argument %q\n", fs.Arg(2))
	}

	if *seed == 0 {
		*seed = time.Now().UTC().UnixNano()
	}
	if state == mixlib.Random {
		logger.Printf("Random initialization, seed=%d\n", *seed)
	}
	rng := rand.New(rand.NewSource(*seed))

	start := mixlib.InitParams(state, rng)
	mix.Params = start
	mix.WriteSummary("Starting values:")

	fmt.Fprintf(out, "Initial parameters\n")
	fmt.Fprintf(out, "p: %.12g, p1: %.12g, p2: %.12g\n", start.P, start.P1, start.P2)

	fmt.Fprintf(out, "Estimated parameters\n")
	for i, k := range checkpoints {
		if *restart {
			mix.Params = start
			mix.LLF = mix.LLF[:0]
		}
		par := mix.Fit(k)
		report(out, k, par, i == 0)
	}

	mix.WriteSummary("Estimated parameters:")
	logger.Printf("Final log-likelihood: %f", mix.Loglike())

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

package mixlib

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/schollz/progressbar"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mixture holds a sequence of coin flips and the current estimate of
// the two-coin mixture that generated them.
type Mixture struct {

	// The raw tokens
	Obs []string

	// The encoded flips, 1 for heads and 0 for tails
	X []float64

	// The current parameter estimates
	Params Params

	// The log-likelihood after each update performed by Fit
	LLF []float64

	// If true, Fit displays a progress bar
	Progress bool

	Warnings warnings

	// Write log messages here
	msglogger *log.Logger
	parlogger *log.Logger
}

type warnings struct {
	LogLikeDecreased int
	NonFinite        int
}

// New returns a Mixture for the given tokens.  The tokens are encoded
// once here and reused by every update.
func New(obs []string) *Mixture {

	return &Mixture{
		Obs: obs,
		X:   EncodeAll(obs),
	}
}

// SetLogger creates the message and parameter logs, named
// logname_msg.log and logname_par.log.
func (mix *Mixture) SetLogger(logname string) *log.Logger {

	fid, err := os.Create(logname + "_msg.log")
	if err != nil {
		panic(err)
	}
	mix.msglogger = log.New(fid, "", log.Ltime)

	fid, err = os.Create(logname + "_par.log")
	if err != nil {
		panic(err)
	}
	mix.parlogger = log.New(fid, "", 0)

	// The calling program can also use this logger
	return mix.msglogger
}

// Initialize sets up default loggers.  Call this prior to calling Fit.
func (mix *Mixture) Initialize() {

	if mix.msglogger == nil {
		mix.msglogger = log.New(os.Stderr, "", log.Ltime)
	}
	if mix.parlogger == nil {
		mix.parlogger = log.New(io.Discard, "", 0)
	}

	if len(mix.X) == 0 {
		mix.msglogger.Printf("No observations, estimates will not be finite\n")
	}

	mix.msglogger.Printf("%d observations\n", mix.NObs())
	mix.msglogger.Printf("%d heads\n", mix.HeadCount())
}

// Logger returns the message logger.
func (mix *Mixture) Logger() *log.Logger {
	return mix.msglogger
}

// NObs returns the number of flips.
func (mix *Mixture) NObs() int {
	return len(mix.X)
}

// HeadCount returns the number of flips encoded as heads.
func (mix *Mixture) HeadCount() int {
	return int(floats.Sum(mix.X))
}

// SampleMean returns the proportion of heads.
func (mix *Mixture) SampleMean() float64 {
	return stat.Mean(mix.X, nil)
}

// Loglike returns the log-likelihood at the current parameter value.
func (mix *Mixture) Loglike() float64 {
	return Loglike(mix.Params, mix.X)
}

// Fit performs niter EM updates starting from the current parameters,
// and returns the final estimate.  Repeated calls continue from where
// the previous call stopped.
func (mix *Mixture) Fit(niter int) Params {

	mix.msglogger.Printf("Estimating model parameters...\n")

	var bar *progressbar.ProgressBar
	if mix.Progress && niter > 0 {
		bar = progressbar.New(niter)
	}

	llf := mix.Loglike()
	for i := 0; i < niter; i++ {

		mix.Params = Update(mix.Params, mix.X)

		llfnew := mix.Loglike()
		if llfnew < llf-1e-10 {
			mix.msglogger.Printf("Log-likelihood decreased by %f\n", llf-llfnew)
			mix.Warnings.LogLikeDecreased++
		}
		if !isFinite(mix.Params) {
			mix.Warnings.NonFinite++
		}

		llf = llfnew
		mix.LLF = append(mix.LLF, llf)
		mix.msglogger.Printf("llf=%f\n", llf)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	mix.msglogger.Printf("%+v\n", mix.Warnings)

	return mix.Params
}

// WriteSummary writes the model parameters to the parameter logger.
func (mix *Mixture) WriteSummary(title string) {

	var buf bytes.Buffer

	mix.parlogger.Print(title)

	for _, c := range []string{"p", "p1", "p2"} {
		_, _ = io.WriteString(&buf, fmt.Sprintf("%20s", c))
	}
	mix.parlogger.Print(buf.String())

	buf.Reset()
	for _, v := range []float64{mix.Params.P, mix.Params.P1, mix.Params.P2} {
		_, _ = io.WriteString(&buf, fmt.Sprintf("%20.4f", v))
	}
	mix.parlogger.Print(buf.String())

	if len(mix.LLF) > 0 {
		mix.parlogger.Printf("Log-likelihood: %f after %d updates\n", mix.LLF[len(mix.LLF)-1], len(mix.LLF))
	}
	mix.parlogger.Printf("\n")
}

func isFinite(par Params) bool {
	for _, v := range []float64{par.P, par.P1, par.P2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

package mixlib

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Heads is the only token that is encoded as a head.  Every other
// token, including "T", is treated as a tail.
const Heads = "H"

// InitState indicates how the starting parameters are chosen.
type InitState uint8

// Uniform, Random are the available initializations.
const (
	Uniform InitState = iota
	Random
)

func (s InitState) String() string {
	switch s {
	case Uniform:
		return "uniform"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("InitState(%d)", uint8(s))
	}
}

// ParseInitState converts "uniform" or "random" to an InitState.
func ParseInitState(s string) (InitState, error) {
	switch s {
	case "uniform":
		return Uniform, nil
	case "random":
		return Random, nil
	default:
		return 0, fmt.Errorf("mixlib: unknown initialization state %q", s)
	}
}

// Params holds the parameters of a two-coin mixture.  The weight of
// coin 2 is always 1-P.
type Params struct {

	// Probability of selecting coin 1
	P float64

	// Probability that coin 1 lands heads
	P1 float64

	// Probability that coin 2 lands heads
	P2 float64
}

func (par Params) String() string {
	return fmt.Sprintf("p: %v, p1: %v, p2: %v", par.P, par.P1, par.P2)
}

// InitParams returns starting values for EM.  Random draws each
// parameter uniformly from [0, 1) using rng, or the global source if
// rng is nil.
func InitParams(state InitState, rng *rand.Rand) Params {

	switch state {
	case Uniform:
		return Params{P: 0.5, P1: 0.5, P2: 0.5}
	case Random:
		draw := rand.Float64
		if rng != nil {
			draw = rng.Float64
		}
		var par Params
		par.P = draw()
		par.P1 = draw()
		par.P2 = draw()
		return par
	default:
		panic(fmt.Sprintf("mixlib: unknown InitState %d", state))
	}
}

// Encode maps a token to 1 if it is a head and 0 otherwise.
func Encode(tok string) float64 {
	if tok == Heads {
		return 1
	}
	return 0
}

// EncodeAll encodes a sequence of tokens.
func EncodeAll(obs []string) []float64 {
	x := make([]float64, len(obs))
	for i, tok := range obs {
		x[i] = Encode(tok)
	}
	return x
}

// bernoulli returns q^x (1-q)^(1-x).
func bernoulli(x, q float64) float64 {
	return math.Pow(q, x) * math.Pow(1-q, 1-x)
}

// Responsibilities returns, for each encoded flip in x, the posterior
// probability that it was produced by coin 1.  A zero denominator
// gives NaN for that flip.
func Responsibilities(x []float64, par Params) []float64 {

	r := make([]float64, len(x))
	for i, v := range x {
		num := par.P * bernoulli(v, par.P1)
		den := num + (1-par.P)*bernoulli(v, par.P2)
		r[i] = num / den
	}

	return r
}

// Maximize re-estimates the parameters from the encoded flips x and
// the responsibilities r.  If every responsibility is 0 (or every one
// is 1) the corresponding bias is NaN.
func Maximize(x, r []float64) Params {

	if len(x) != len(r) {
		panic("mixlib: len(x) != len(r)")
	}

	n := float64(len(x))
	sr := floats.Sum(r)
	srx := floats.Dot(r, x)
	sx := floats.Sum(x)

	return Params{
		P:  sr / n,
		P1: srx / sr,
		P2: (sx - srx) / (n - sr),
	}
}

// Update performs one EM step and returns the new parameters.  par is
// not modified.
func Update(par Params, x []float64) Params {
	r := Responsibilities(x, par)
	return Maximize(x, r)
}

// Run applies k EM steps starting from par.  If k is zero par is
// returned unchanged.
func Run(par Params, x []float64, k int) Params {
	for i := 0; i < k; i++ {
		par = Update(par, x)
	}
	return par
}

// Loglike returns the observed-data log-likelihood of x at par.
func Loglike(par Params, x []float64) float64 {

	lpr := make([]float64, len(x))
	for i, v := range x {
		lpr[i] = math.Log(par.P*bernoulli(v, par.P1) + (1-par.P)*bernoulli(v, par.P2))
	}

	return floats.Sum(lpr)
}

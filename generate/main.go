package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/kshedden/cointoss/mixlib"
)

func main() {

	var outname string
	flag.StringVar(&outname, "outname", "", "Output file name, gzip compressed if it ends in .gz")

	var par mixlib.Params
	flag.Float64Var(&par.P, "p", 0.5, "Probability of selecting coin 1")
	flag.Float64Var(&par.P1, "p1", 0.8, "Probability that coin 1 lands heads")
	flag.Float64Var(&par.P2, "p2", 0.3, "Probability that coin 2 lands heads")

	var n int
	var seed int64
	flag.IntVar(&n, "n", 100, "Number of flips")
	flag.Int64Var(&seed, "seed", 0, "Random seed, 0 uses the clock")
	flag.Parse()

	if outname == "" {
		panic("'outname' is required")
	}

	for _, v := range []float64{par.P, par.P1, par.P2} {
		if v < 0 || v > 1 {
			panic(fmt.Sprintf("generate: %v is not a probability\n", v))
		}
	}

	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	obs := mixlib.Simulate(par, n, rng)

	if err := mixlib.WriteObs(outname, obs); err != nil {
		panic(err)
	}
}

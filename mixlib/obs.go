package mixlib

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
)

// Tails is the token written for a tail.
const Tails = "T"

// ParseObs reads whitespace-separated tokens from r.  Tokens may be
// of any length.
func ParseObs(r io.Reader) ([]string, error) {

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	scanner.Split(bufio.ScanWords)

	var obs []string
	for scanner.Scan() {
		obs = append(obs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mixlib: reading observations: %w", err)
	}

	return obs, nil
}

// ReadObs reads the tokens in a file.  If the file name ends with
// ".gz" the file is decompressed.
func ReadObs(fname string) ([]string, error) {

	fid, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fid.Close()

	var rdr io.Reader = fid
	if strings.HasSuffix(fname, ".gz") {
		gid, err := gzip.NewReader(fid)
		if err != nil {
			return nil, fmt.Errorf("mixlib: %s: %w", fname, err)
		}
		defer gid.Close()
		rdr = gid
	}

	obs, err := ParseObs(rdr)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, fname)
	}

	return obs, nil
}

// WriteObs writes the tokens to a file separated by single spaces,
// compressing the file if its name ends with ".gz".
func WriteObs(fname string, obs []string) error {

	fid, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer fid.Close()

	var wtr io.Writer = fid
	var gid *gzip.Writer
	if strings.HasSuffix(fname, ".gz") {
		gid = gzip.NewWriter(fid)
		wtr = gid
	}

	bw := bufio.NewWriter(wtr)
	for i, tok := range obs {
		if i > 0 {
			_ = bw.WriteByte(' ')
		}
		_, _ = bw.WriteString(tok)
	}
	_ = bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return err
	}

	if gid != nil {
		if err := gid.Close(); err != nil {
			return err
		}
	}

	return fid.Close()
}

// Simulate draws n flips from the mixture.  For each flip, coin 1 is
// selected with probability par.P and then tossed.
func Simulate(par Params, n int, rng *rand.Rand) []string {

	obs := make([]string, n)
	for i := range obs {
		bias := par.P2
		if rng.Float64() < par.P {
			bias = par.P1
		}
		if rng.Float64() < bias {
			obs[i] = Heads
		} else {
			obs[i] = Tails
		}
	}

	return obs
}

package mixlib

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseObs(t *testing.T) {

	obs, err := ParseObs(strings.NewReader("H T H\nH  T\tT\n\nH H\n"))
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"H", "T", "H", "H", "T", "T", "H", "H"}
	if strings.Join(obs, ",") != strings.Join(expected, ",") {
		t.Errorf("got %v, expected %v", obs, expected)
	}

	obs, err = ParseObs(strings.NewReader(" \n\t"))
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 0 {
		t.Errorf("got %v", obs)
	}
}

func TestParseObsLongToken(t *testing.T) {

	long := strings.Repeat("T", 70000)
	obs, err := ParseObs(strings.NewReader("H T " + long + " H\n"))
	if err != nil {
		t.Fatal(err)
	}

	if len(obs) != 4 || obs[2] != long || obs[3] != "H" {
		t.Fatalf("got %d tokens, expected 4", len(obs))
	}

	x := EncodeAll(obs)
	if x[0] != 1 || x[2] != 0 || x[3] != 1 {
		t.Errorf("got %v", x)
	}
}

func TestReadWriteObs(t *testing.T) {

	dir := t.TempDir()
	rng := rand.New(rand.NewSource(5))
	obs := Simulate(Params{P: 0.5, P1: 0.7, P2: 0.1}, 200, rng)

	for _, name := range []string{"flips.txt", "flips.txt.gz"} {
		fname := filepath.Join(dir, name)
		if err := WriteObs(fname, obs); err != nil {
			t.Fatal(err)
		}
		got, err := ReadObs(fname)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Join(got, " ") != strings.Join(obs, " ") {
			t.Errorf("%s: tokens differ after round trip", name)
		}
	}

	if _, err := ReadObs(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}

	// Plain text with a .gz name is not a valid gzip stream.
	bad := filepath.Join(dir, "bad.gz")
	if err := os.WriteFile(bad, []byte("H T\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadObs(bad); err == nil {
		t.Error("expected an error for a corrupt gzip file")
	}
}

func TestSimulate(t *testing.T) {

	rng := rand.New(rand.NewSource(6))
	par := Params{P: 0.4, P1: 0.9, P2: 0.3}
	obs := Simulate(par, 20000, rng)

	for _, tok := range obs {
		if tok != Heads && tok != Tails {
			t.Fatalf("unexpected token %q", tok)
		}
	}

	mix := New(obs)
	ph := par.P*par.P1 + (1-par.P)*par.P2
	if math.Abs(mix.SampleMean()-ph) > 0.02 {
		t.Errorf("sample mean %v, expected about %v", mix.SampleMean(), ph)
	}
	if mix.NObs() != 20000 {
		t.Errorf("NObs()=%d", mix.NObs())
	}
}

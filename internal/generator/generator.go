// Package generator builds an initial self-avoiding HP chain for the
// core simulation to fold. This is the "external collaborator" spec.md
// places deliberately out of the core's scope; it is included here so
// the repository is runnable end to end.
//
// Grounded in original_source/generation.py's generate_protein: a
// random walk that takes one unit step at a time in a uniformly chosen
// axis direction, assigning each new monomer kind H with probability h.
// Where the source backtracks via an explicit "dead chain" of marked
// positions, this implementation instead restarts the whole walk from
// scratch on a dead end, up to MaxAttempts times — an alternative
// spec.md §6 explicitly permits ("implementations must do likewise or
// retry from scratch").
package generator

import (
	"fmt"

	"github.com/foldlab/hplattice/internal/lattice"
	"github.com/foldlab/hplattice/internal/rng"
)

// Config controls chain generation.
type Config struct {
	Length         int
	Hydrophobicity float64 // h in [0,1]: P(kind == H)
	MaxAttempts     int     // default 100
}

var directions = [4]lattice.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Generate produces a self-avoiding chain of cfg.Length monomers. It
// retries the whole walk on a dead end (no unoccupied neighbour to step
// to) up to cfg.MaxAttempts times before returning an error — this is
// the "generator exhaustion" failure mode spec.md §7 calls out as a
// legitimate, caller-visible error rather than a programmer error.
func Generate(cfg Config, src *rng.Source) ([]lattice.Monomer, error) {
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("generator: length must be positive, got %d", cfg.Length)
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 100
	}

	for attempt := 0; attempt < attempts; attempt++ {
		chain, ok := attemptWalk(cfg, src)
		if ok {
			return chain, nil
		}
	}
	return nil, fmt.Errorf("generator: failed to build a self-avoiding chain of length %d in %d attempts", cfg.Length, attempts)
}

func attemptWalk(cfg Config, src *rng.Source) ([]lattice.Monomer, bool) {
	occupied := make(map[lattice.Point]bool, cfg.Length)
	chain := make([]lattice.Monomer, 0, cfg.Length)

	start := lattice.Point{X: 0, Y: 0}
	occupied[start] = true
	chain = append(chain, lattice.Monomer{Kind: randomKind(cfg.Hydrophobicity, src), Pos: start})

	for len(chain) < cfg.Length {
		cur := chain[len(chain)-1].Pos

		var candidates []lattice.Point
		for _, d := range directions {
			p := cur.Add(d)
			if !occupied[p] {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			return nil, false
		}

		next := candidates[src.Intn(len(candidates))]
		occupied[next] = true
		chain = append(chain, lattice.Monomer{Kind: randomKind(cfg.Hydrophobicity, src), Pos: next})
	}

	return chain, true
}

func randomKind(h float64, src *rng.Source) lattice.Kind {
	if src.Bernoulli(h) {
		return lattice.H
	}
	return lattice.P
}

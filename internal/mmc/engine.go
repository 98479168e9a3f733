// Package mmc implements the Metropolis Monte Carlo acceptance loop
// over a lattice.Chain: propose a move via moveset, accept or reject by
// the Boltzmann criterion, sample energy and gyration radius every S
// iterations.
//
// Grounded in original_source/computation.py's mmc() function and
// optimization/simulated_annealing.go's Metropolis loop structure
// (temperature-driven accept/reject, best-structure tracking,
// verbose/event logging hooks).
package mmc

import (
	"math"

	"github.com/foldlab/hplattice/internal/energy"
	"github.com/foldlab/hplattice/internal/lattice"
	"github.com/foldlab/hplattice/internal/moveset"
	"github.com/foldlab/hplattice/internal/rng"
	"github.com/rs/zerolog"
)

// boltzmannWeight returns exp(-(proposed-current)/(kB*T)).
func boltzmannWeight(current, proposed, kB, T float64) float64 {
	return math.Exp(-(proposed - current) / (kB * T))
}

// Config holds the Metropolis loop's parameters for one run at a fixed
// temperature.
type Config struct {
	Temperature float64
	Epsilon     float64
	Boltzmann   float64 // default 1
	Iterations  int
	Stride      int // sampling stride S
	TrackLowest bool
	Logger      zerolog.Logger // zero value (Nop) by default
}

// Result is what one MMC run produces: sample traces, the (mutated in
// place) final chain, and optionally the lowest-energy conformation
// seen.
type Result struct {
	EnergyTrace   []float64
	GyrationTrace []float64
	LowestEnergy  float64
	LowestChain   *lattice.Chain // nil unless Config.TrackLowest
}

// Run executes the Metropolis loop on chain in place, per spec.md
// §4.4: at each iteration, pick kink/endpoint or pivot with equal
// probability; on acceptance, keep the move; on rejection, undo it.
// Samples are taken every Stride iterations, plus one at iteration 0
// before the loop starts.
func Run(chain *lattice.Chain, cfg Config, src *rng.Source) Result {
	stride := cfg.Stride
	if stride <= 0 {
		stride = 1
	}
	kB := cfg.Boltzmann
	if kB == 0 {
		kB = 1
	}

	n := chain.Len()
	result := Result{
		EnergyTrace:   make([]float64, 0, cfg.Iterations/stride+1),
		GyrationTrace: make([]float64, 0, cfg.Iterations/stride+1),
	}

	currentEnergy := energy.Contacts(chain, cfg.Epsilon)
	result.EnergyTrace = append(result.EnergyTrace, currentEnergy)
	result.GyrationTrace = append(result.GyrationTrace, energy.GyrationRadius(chain))

	result.LowestEnergy = currentEnergy
	if cfg.TrackLowest {
		result.LowestChain = chain.Clone()
	}

	for iter := 0; iter < cfg.Iterations; iter++ {
		proposeMove(chain, n, src)

		newEnergy := energy.Contacts(chain, cfg.Epsilon)
		accepted := accept(currentEnergy, newEnergy, kB, cfg.Temperature, src)

		if accepted {
			currentEnergy = newEnergy
			if cfg.TrackLowest && currentEnergy < result.LowestEnergy {
				result.LowestEnergy = currentEnergy
				result.LowestChain = chain.Clone()
			}
		} else {
			chain.UndoLastChange()
		}

		cfg.Logger.Debug().
			Int("iter", iter).
			Bool("accepted", accepted).
			Float64("energy", currentEnergy).
			Msg("mmc step")

		if (iter+1)%stride == 0 {
			result.EnergyTrace = append(result.EnergyTrace, currentEnergy)
			result.GyrationTrace = append(result.GyrationTrace, energy.GyrationRadius(chain))
		}
	}

	return result
}

// accept implements the Metropolis criterion: always accept an
// improving move, otherwise accept with probability
// exp(-(E'-E)/(kT)).
func accept(current, proposed, kB, T float64, src *rng.Source) bool {
	if proposed < current {
		return true
	}
	w := boltzmannWeight(current, proposed, kB, T)
	return w > src.Float64()
}

// proposeMove draws and applies one trial move per spec.md §4.4: pick
// a family uniformly, then (for kink/endpoint) shrink the set of
// untried indices until one succeeds or it empties, falling back to a
// pivot so the simulation never stalls; (for pivot) retry with fresh
// draws until one succeeds.
func proposeMove(chain *lattice.Chain, n int, src *rng.Source) {
	family := src.Intn(2)
	if family == 0 {
		if tryKinkOrEndpoint(chain, n, src) {
			return
		}
	}
	tryPivot(chain, n, src)
}

func tryKinkOrEndpoint(chain *lattice.Chain, n int, src *rng.Source) bool {
	untried := make([]int, n)
	for i := range untried {
		untried[i] = i
	}

	for len(untried) > 0 {
		pick := src.Intn(len(untried))
		idx := untried[pick]

		var ok bool
		if idx == 0 || idx == n-1 {
			ok = moveset.EndpointRotation(chain, idx)
		} else {
			ok = moveset.KinkJump(chain, idx)
		}
		if ok {
			return true
		}

		untried[pick] = untried[len(untried)-1]
		untried = untried[:len(untried)-1]
	}
	return false
}

func tryPivot(chain *lattice.Chain, n int, src *rng.Source) {
	for {
		r := src.Intn(n)
		dir := moveset.Clockwise
		if src.Intn(2) == 1 {
			dir = moveset.CounterClockwise
		}
		part := moveset.Left
		if src.Intn(2) == 1 {
			part = moveset.Right
		}
		if moveset.Pivot(chain, r, dir, part) {
			return
		}
	}
}

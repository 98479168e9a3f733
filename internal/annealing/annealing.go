// Package annealing drives a descending-temperature sequence of MMC
// runs over a single shared lattice.Chain, tracking the global lowest
// energy seen and computing per-step heat capacity.
//
// Grounded in original_source/simulated_annealing.py's
// perform_mmc_simulated_annealing (temperature schedule, burn-in
// discard, global-minimum tracking) and
// optimization/simulated_annealing.go's result-struct/logging style.
package annealing

import (
	"sync"

	"github.com/foldlab/hplattice/internal/energy"
	"github.com/foldlab/hplattice/internal/lattice"
	"github.com/foldlab/hplattice/internal/mmc"
	"github.com/foldlab/hplattice/internal/rng"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// Config holds the MMC parameters shared across every temperature step
// plus the annealing schedule itself.
type Config struct {
	Steps           int // K: number of temperature steps
	IterationsPerStep int // M
	Stride          int // S
	TMax, TMin      float64
	Epsilon         float64
	Boltzmann       float64
	BurnInFraction  float64 // default 0.1
	TrackLowest     bool
	Logger          zerolog.Logger
}

// StepResult is the per-temperature-step output: the temperature, and
// the post-burn-in energy/gyration traces, plus the heat capacity
// computed from the retained trace.
type StepResult struct {
	Temperature   float64
	Energy        []float64
	Gyration      []float64
	HeatCapacity  float64
}

// Result is the full annealing run output.
type Result struct {
	Steps        []StepResult
	LowestEnergy float64
	LowestChain  *lattice.Chain // nil unless Config.TrackLowest
	LowestTemp   float64
}

// temperatureAt computes T_k = T_max - ((T_max-T_min)/K) * k.
func temperatureAt(cfg Config, k int) float64 {
	return cfg.TMax - ((cfg.TMax-cfg.TMin)/float64(cfg.Steps))*float64(k)
}

func burnInFraction(cfg Config) float64 {
	if cfg.BurnInFraction > 0 {
		return cfg.BurnInFraction
	}
	return 0.1
}

// discardBurnIn drops the leading fraction of a trace, rounding down,
// matching original_source/benchmarking.py's discard_fraction_of_array.
func discardBurnIn(trace []float64, fraction float64) []float64 {
	cut := int(float64(len(trace)) * fraction)
	if cut >= len(trace) {
		cut = len(trace) - 1
	}
	out := make([]float64, len(trace)-cut)
	copy(out, trace[cut:])
	return out
}

// heatCapacity computes C(T) = (<E^2> - <E>^2) / (k*T) over a retained
// trace. <E^2> - <E>^2 is the population variance of the sample, got by
// rescaling gonum/stat.MeanVariance's Bessel-corrected variance by
// (n-1)/n.
func heatCapacity(trace []float64, kB, T float64) float64 {
	n := len(trace)
	if n < 2 {
		return 0
	}
	_, variance := stat.MeanVariance(trace, nil)
	return variance * float64(n-1) / float64(n) / (kB * T)
}

// Run performs K sequential MMC invocations at descending temperatures
// on the shared chain, per spec.md §4.5.
func Run(chain *lattice.Chain, cfg Config, src *rng.Source) Result {
	kB := cfg.Boltzmann
	if kB == 0 {
		kB = 1
	}
	fraction := burnInFraction(cfg)

	result := Result{
		Steps:        make([]StepResult, 0, cfg.Steps),
		LowestEnergy: mmcInitialEnergy(chain, cfg.Epsilon),
		LowestTemp:   cfg.TMax,
	}
	if cfg.TrackLowest {
		result.LowestChain = chain.Clone()
	}

	for k := 0; k < cfg.Steps; k++ {
		T := temperatureAt(cfg, k)

		cfg.Logger.Info().
			Int("step", k).
			Int("of", cfg.Steps).
			Float64("temperature", T).
			Msg("annealing step")

		stepRes := mmc.Run(chain, mmc.Config{
			Temperature: T,
			Epsilon:     cfg.Epsilon,
			Boltzmann:   kB,
			Iterations:  cfg.IterationsPerStep,
			Stride:      cfg.Stride,
			TrackLowest: cfg.TrackLowest,
			Logger:      cfg.Logger,
		}, src)

		if cfg.TrackLowest && stepRes.LowestEnergy < result.LowestEnergy {
			result.LowestEnergy = stepRes.LowestEnergy
			result.LowestChain = stepRes.LowestChain
			result.LowestTemp = T
		}

		energyTrace := discardBurnIn(stepRes.EnergyTrace, fraction)
		gyrationTrace := discardBurnIn(stepRes.GyrationTrace, fraction)

		result.Steps = append(result.Steps, StepResult{
			Temperature:  T,
			Energy:       energyTrace,
			Gyration:     gyrationTrace,
			HeatCapacity: heatCapacity(energyTrace, kB, T),
		})
	}

	return result
}

func mmcInitialEnergy(chain *lattice.Chain, epsilon float64) float64 {
	// Mirrors mmc.Run's own initial-energy computation so Result.LowestEnergy
	// has a sane baseline even if TrackLowest is false or Steps is 0.
	return energy.Contacts(chain, epsilon)
}

// RunParallel runs each temperature step as a job on a bounded pool of
// `workers` goroutines. Every job works on its own deep copy of base,
// and every worker owns one rng.Source derived from masterSeed and its
// worker index, so no chain or randomness state is shared between
// goroutines. Results are returned in the same order as the schedule,
// regardless of completion order.
func RunParallel(base *lattice.Chain, cfg Config, masterSeed int64, workers int) []StepResult {
	if workers <= 0 {
		workers = 1
	}

	type job struct {
		index int
		temp  float64
	}
	type outcome struct {
		index int
		res   StepResult
	}

	jobs := make(chan job, cfg.Steps)
	results := make(chan outcome, cfg.Steps)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerIdx int) {
			defer wg.Done()
			src := rng.New(nil).Derive(masterSeed, workerIdx)
			for j := range jobs {
				localChain := base.Clone()
				stepRes := mmc.Run(localChain, mmc.Config{
					Temperature: j.temp,
					Epsilon:     cfg.Epsilon,
					Boltzmann:   cfg.Boltzmann,
					Iterations:  cfg.IterationsPerStep,
					Stride:      cfg.Stride,
					TrackLowest: cfg.TrackLowest,
					Logger:      cfg.Logger,
				}, src)

				fraction := burnInFraction(cfg)
				kB := cfg.Boltzmann
				if kB == 0 {
					kB = 1
				}
				energyTrace := discardBurnIn(stepRes.EnergyTrace, fraction)
				gyrationTrace := discardBurnIn(stepRes.GyrationTrace, fraction)

				results <- outcome{
					index: j.index,
					res: StepResult{
						Temperature:  j.temp,
						Energy:       energyTrace,
						Gyration:     gyrationTrace,
						HeatCapacity: heatCapacity(energyTrace, kB, j.temp),
					},
				}
			}
		}(w)
	}

	for k := 0; k < cfg.Steps; k++ {
		jobs <- job{index: k, temp: temperatureAt(cfg, k)}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]StepResult, cfg.Steps)
	for o := range results {
		ordered[o.index] = o.res
	}
	return ordered
}

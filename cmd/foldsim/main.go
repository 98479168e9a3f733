// Command foldsim drives one annealing run of the HP-lattice folding
// simulator end to end: generate an initial chain, anneal it across a
// descending temperature schedule, and report the final and
// lowest-energy conformations plus their sample traces.
//
// Grounded in backend/cmd/full_pipeline/main.go's style: a plain
// main(), fmt.Println progress messages, log.Fatalf on setup failure.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/foldlab/hplattice/internal/annealing"
	"github.com/foldlab/hplattice/internal/config"
	"github.com/foldlab/hplattice/internal/generator"
	"github.com/foldlab/hplattice/internal/lattice"
	"github.com/foldlab/hplattice/internal/obslog"
	"github.com/foldlab/hplattice/internal/rng"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML run config (defaults baked in if omitted)")
	seedFlag := flag.Int64("seed", 0, "override the config's RNG seed (0 = use config value)")
	outDir := flag.String("out", "", "directory to write the final/lowest lattice as JSON (optional)")
	verbose := flag.Bool("verbose", false, "enable per-MMC-iteration debug logging")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *verbose {
		cfg.Verbose = true
	}

	logger := obslog.New(cfg.Verbose)

	fmt.Println("=== HP-Lattice Folding Simulator ===")
	fmt.Printf("chain length=%d hydrophobicity=%.2f seed=%d\n", cfg.ChainLength, cfg.Hydrophobicity, cfg.Seed)

	seed := cfg.Seed
	src := rng.New(&seed)

	monomers, err := generator.Generate(generator.Config{
		Length:         cfg.ChainLength,
		Hydrophobicity: cfg.Hydrophobicity,
	}, src)
	if err != nil {
		log.Fatalf("failed to generate initial chain: %v", err)
	}

	chain, err := lattice.NewChain(monomers)
	if err != nil {
		log.Fatalf("generated chain violated lattice invariants: %v", err)
	}

	fmt.Println("Annealing...")
	result := annealing.Run(chain, annealing.Config{
		Steps:             cfg.TemperatureSteps,
		IterationsPerStep: cfg.IterationsPerStep,
		Stride:            cfg.SamplingStride,
		TMax:              cfg.TMax,
		TMin:              cfg.TMin,
		Epsilon:           cfg.Epsilon,
		Boltzmann:         cfg.Boltzmann,
		BurnInFraction:    cfg.BurnInFraction,
		TrackLowest:       cfg.StoreLowestLattice,
		Logger:            logger,
	}, src)

	fmt.Printf("Lowest energy found: %.2f", result.LowestEnergy)
	if cfg.StoreLowestLattice {
		fmt.Printf(" (at T=%.3f)", result.LowestTemp)
	}
	fmt.Println()
	fmt.Printf("Final chain energy: %.2f\n", result.Steps[len(result.Steps)-1].Energy[len(result.Steps[len(result.Steps)-1].Energy)-1])

	if *outDir != "" {
		if err := writeReport(*outDir, chain, result); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
		fmt.Printf("Wrote report to %s\n", *outDir)
	}
}

// report is the small JSON dump cmd/foldsim writes on request. It is a
// terminal report of a single run, not a resumable checkpoint — see
// SPEC_FULL.md's Non-goals note on state persistence.
type report struct {
	FinalChain   []lattice.Monomer   `json:"final_chain"`
	LowestEnergy float64             `json:"lowest_energy"`
	LowestTemp   float64             `json:"lowest_temperature"`
	LowestChain  []lattice.Monomer   `json:"lowest_chain,omitempty"`
	Steps        []annealing.StepResult `json:"steps"`
}

func writeReport(dir string, finalChain *lattice.Chain, result annealing.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	rep := report{
		FinalChain:   finalChain.Monomers(),
		LowestEnergy: result.LowestEnergy,
		LowestTemp:   result.LowestTemp,
		Steps:        result.Steps,
	}
	if result.LowestChain != nil {
		rep.LowestChain = result.LowestChain.Monomers()
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "report.json"), data, 0o644)
}

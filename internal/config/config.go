// Package config defines the caller-visible run configuration surface
// (spec.md §6) and loads it from a YAML file.
//
// Grounded in niceyeti-tabular/tabular/reinforcement/learning.go's
// FromYaml: a viper.New() instance, scoped to a single config file
// rather than process-global viper state, unmarshalled into an
// intermediate map-shaped struct and re-marshalled into the public
// typed struct — this keeps RunConfig free of viper/mapstructure
// struct tags.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// RunConfig is the complete set of knobs spec.md §6 names as
// caller-visible: chain length, hydrophobicity, MMC iteration count and
// sampling stride, energy constants, the annealing temperature
// schedule, the RNG seed, and the two reporting flags.
type RunConfig struct {
	ChainLength    int     `yaml:"chain_length"`
	Hydrophobicity float64 `yaml:"hydrophobicity"`

	TemperatureSteps int     `yaml:"temperature_steps"` // K
	IterationsPerStep int    `yaml:"iterations_per_step"` // M
	SamplingStride   int     `yaml:"sampling_stride"` // S
	TMax             float64 `yaml:"t_max"`
	TMin             float64 `yaml:"t_min"`

	Epsilon   float64 `yaml:"epsilon"`
	Boltzmann float64 `yaml:"boltzmann"`

	Seed int64 `yaml:"seed"`

	StoreLowestLattice bool    `yaml:"store_lowest_lattice"`
	BurnInFraction     float64 `yaml:"burn_in_fraction"`

	Verbose bool `yaml:"verbose"`
}

// Default returns spec.md's documented defaults: T_min = 0, burn-in
// fraction = 0.1, Boltzmann constant k = 1.
func Default() RunConfig {
	return RunConfig{
		ChainLength:       25,
		Hydrophobicity:    0.5,
		TemperatureSteps:  25,
		IterationsPerStep: 15000,
		SamplingStride:    100,
		TMax:              2.0,
		TMin:              0.0,
		Epsilon:           1.0,
		Boltzmann:         1.0,
		Seed:              42,
		BurnInFraction:    0.1,
	}
}

// Load reads a YAML config file into a RunConfig, starting from
// Default() so an omitted field keeps its documented default rather
// than zeroing out.
func Load(path string) (RunConfig, error) {
	cfg := Default()

	vp := viper.New()
	vp.SetConfigName(filepathBase(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	raw, err := yaml.Marshal(vp.AllSettings())
	if err != nil {
		return cfg, fmt.Errorf("config: re-marshalling %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	return cfg, nil
}

func filepathBase(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

package annealing

import (
	"math"
	"testing"

	"github.com/foldlab/hplattice/internal/lattice"
	"github.com/foldlab/hplattice/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChain(t *testing.T, n int) *lattice.Chain {
	t.Helper()
	monomers := make([]lattice.Monomer, n)
	for i := 0; i < n; i++ {
		kind := lattice.P
		if i%3 == 0 {
			kind = lattice.H
		}
		monomers[i] = lattice.Monomer{Kind: kind, Pos: lattice.Point{X: i, Y: 0}}
	}
	c, err := lattice.NewChain(monomers)
	require.NoError(t, err)
	return c
}

func TestTemperatureSchedule(t *testing.T) {
	cfg := Config{Steps: 4, TMax: 2.0, TMin: 0.0}
	assert.Equal(t, 2.0, temperatureAt(cfg, 0))
	assert.Equal(t, 1.5, temperatureAt(cfg, 1))
	assert.Equal(t, 1.0, temperatureAt(cfg, 2))
	assert.Equal(t, 0.5, temperatureAt(cfg, 3))
}

func TestDiscardBurnIn(t *testing.T) {
	trace := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	got := discardBurnIn(trace, 0.1)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestRunProducesFiniteNonNegativeHeatCapacity(t *testing.T) {
	c := sampleChain(t, 25)
	seed := int64(5)
	src := rng.New(&seed)

	result := Run(c, Config{
		Steps:             8,
		IterationsPerStep: 2000,
		Stride:            100,
		TMax:              2.0,
		TMin:              0.0,
		Epsilon:           1.0,
		Boltzmann:         1.0,
		TrackLowest:       true,
	}, src)

	require.Len(t, result.Steps, 8)
	for _, step := range result.Steps {
		assert.False(t, math.IsInf(step.HeatCapacity, 0))
		assert.False(t, math.IsNaN(step.HeatCapacity))
		assert.GreaterOrEqual(t, step.HeatCapacity, 0.0)
	}
	require.NotNil(t, result.LowestChain)
	assert.NoError(t, result.LowestChain.CheckInvariants())
}

func TestRunParallelPreservesOrder(t *testing.T) {
	c := sampleChain(t, 16)
	results := RunParallel(c, Config{
		Steps:             6,
		IterationsPerStep: 200,
		Stride:            50,
		TMax:              1.5,
		TMin:              0.1,
		Epsilon:           1.0,
		Boltzmann:         1.0,
	}, 123, 3)

	require.Len(t, results, 6)
	for k := 1; k < len(results); k++ {
		assert.Less(t, results[k].Temperature, results[k-1].Temperature)
	}
}

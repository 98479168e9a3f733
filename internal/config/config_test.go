package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.0, cfg.TMin)
	assert.Equal(t, 0.1, cfg.BurnInFraction)
	assert.Equal(t, 1.0, cfg.Boltzmann)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := `
chain_length: 40
hydrophobicity: 0.4
seed: 777
t_max: 3.0
store_lowest_lattice: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.ChainLength)
	assert.Equal(t, 0.4, cfg.Hydrophobicity)
	assert.Equal(t, int64(777), cfg.Seed)
	assert.Equal(t, 3.0, cfg.TMax)
	assert.True(t, cfg.StoreLowestLattice)
	// Fields absent from the file keep Default()'s values.
	assert.Equal(t, 0.1, cfg.BurnInFraction)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

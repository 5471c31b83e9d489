package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/evolife/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.GridSize)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	t.Run("overrides apply over defaults", func(t *testing.T) {
		path := writeConfig(t, `
grid_size: 12
population_size: 30
seed: 7
fitness:
  lifespan: 100.0
log_level: DEBUG
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 12, cfg.GridSize)
		assert.Equal(t, 30, cfg.PopulationSize)
		assert.Equal(t, int64(7), cfg.Seed)
		assert.Equal(t, "DEBUG", cfg.LogLevel)
		assert.InDelta(t, 100.0, cfg.Fitness.Lifespan, 1e-9)
		// Untouched fields keep their defaults.
		assert.Equal(t, 50, cfg.Generations)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.InvalidInput))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "grid_size: [not a number"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.InvalidInput))
	})

	t.Run("out-of-range value", func(t *testing.T) {
		_, err := Load(writeConfig(t, "grid_size: 2"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ValidationFailed))
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := Load(writeConfig(t, "log_level: VERBOSE"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ValidationFailed))
	})
}

func TestValidateCrossField(t *testing.T) {
	cfg := Default()
	cfg.InitialMutationRate = 0.3
	cfg.MutationRateLowerLimit = 0.6

	err := cfg.Validate()

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ValidationFailed))
}

func TestEvolutionConfig(t *testing.T) {
	cfg := Default()
	cfg.GridSize = 8
	cfg.Seed = 99
	cfg.GameIterationLimit = 5000

	evo := cfg.EvolutionConfig()

	assert.Equal(t, 8, evo.GridSize)
	assert.Equal(t, int64(99), evo.Seed)
	assert.Equal(t, 5000, evo.IterationLimit)
	assert.Equal(t, cfg.Fitness, evo.Weights)
	assert.NoError(t, evo.Validate())
}

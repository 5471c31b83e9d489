package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoop(t *testing.T, mutate func(*Config)) *Loop {
	t.Helper()
	config := DefaultConfig()
	config.GridSize = 5
	config.PopulationSize = 10
	config.Generations = 3
	config.Seed = 42
	if mutate != nil {
		mutate(config)
	}
	loop, err := NewLoop(config)
	require.NoError(t, err)
	return loop
}

func TestGenerators(t *testing.T) {
	loop := newTestLoop(t, nil)
	total := loop.config.GridSize * loop.config.GridSize

	generators := map[string]func() []uint8{
		"clustered": func() []uint8 { return loop.generateClustered() },
		"scattered": func() []uint8 { return loop.generateScattered() },
		"block":     func() []uint8 { return loop.generateBlock() },
	}

	for name, generate := range generators {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				config := generate()
				require.Len(t, config, total)

				alive := 0
				for _, cell := range config {
					assert.LessOrEqual(t, cell, uint8(1))
					alive += int(cell)
				}
				assert.Greater(t, alive, 0, "generated configuration must have a live cell")
			}
		})
	}

	t.Run("variety batch size", func(t *testing.T) {
		batch := loop.generateVariety(4, 3, 2)
		assert.Len(t, batch, 9)
		for _, config := range batch {
			assert.Len(t, config, total)
		}
	})

	t.Run("same seed gives the same batch", func(t *testing.T) {
		a := newTestLoop(t, nil).generateVariety(3, 3, 3)
		b := newTestLoop(t, nil).generateVariety(3, 3, 3)
		require.Equal(t, len(a), len(b))
		for i := range a {
			assert.True(t, a[i].Equal(b[i]))
		}
	})
}

package evolution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/evolife/pkg/errors"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"grid too small", func(c *Config) { c.GridSize = 2 }},
		{"empty population", func(c *Config) { c.PopulationSize = 0 }},
		{"no generations", func(c *Config) { c.Generations = 0 }},
		{"zero mutation rate", func(c *Config) { c.InitialMutationRate = 0 }},
		{"mutation rate above one", func(c *Config) { c.InitialMutationRate = 1.5 }},
		{"zero rate floor", func(c *Config) { c.MutationRateLowerLimit = 0 }},
		{"zero tournament", func(c *Config) { c.TournamentSize = 0 }},
		{"zero iteration limit", func(c *Config) { c.IterationLimit = 0 }},
		{"zero stable window", func(c *Config) { c.MaxStableGenerations = 0 }},
		{"zero goroutines", func(c *Config) { c.MaxGoroutines = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			_, err := NewLoop(config)

			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ValidationFailed))
		})
	}

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		loop, err := NewLoop(nil)
		require.NoError(t, err)
		assert.Equal(t, 10, loop.config.GridSize)
		assert.NotEmpty(t, loop.RunID())
	})
}

func TestAdjustMutationRate(t *testing.T) {
	t.Run("regression raises the rate", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.4
		loop.generationStats = []GenerationStatistics{
			{Generation: 0, AvgFitness: 10},
			{Generation: 1, AvgFitness: 5},
		}

		loop.adjustMutationRate(1)

		assert.InDelta(t, 0.8, loop.mutationRate, 1e-9)
	})

	t.Run("improvement lowers the rate", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.4
		loop.generationStats = []GenerationStatistics{
			{Generation: 0, AvgFitness: 5},
			{Generation: 1, AvgFitness: 10},
		}

		loop.adjustMutationRate(1)

		assert.InDelta(t, 0.2, loop.mutationRate, 1e-9)
	})

	t.Run("rate never drops below the floor", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.4
		loop.generationStats = []GenerationStatistics{
			{Generation: 0, AvgFitness: 1},
			{Generation: 1, AvgFitness: 100},
		}

		loop.adjustMutationRate(1)

		assert.InDelta(t, loop.config.MutationRateLowerLimit, loop.mutationRate, 1e-9)
	})

	t.Run("rate never exceeds one", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.9
		loop.generationStats = []GenerationStatistics{
			{Generation: 0, AvgFitness: 50},
			{Generation: 1, AvgFitness: 2},
		}

		loop.adjustMutationRate(1)

		assert.InDelta(t, 1.0, loop.mutationRate, 1e-9)
	})

	t.Run("out-of-range generation is a no-op", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		before := loop.mutationRate

		loop.adjustMutationRate(0)
		loop.adjustMutationRate(7)

		assert.Equal(t, before, loop.mutationRate)
	})
}

func TestCheckForStagnation(t *testing.T) {
	ctx := context.Background()

	flatStats := func(n int, avg float64) []GenerationStatistics {
		stats := make([]GenerationStatistics, n)
		for i := range stats {
			stats[i] = GenerationStatistics{Generation: i, AvgFitness: avg}
		}
		return stats
	}

	t.Run("full stagnation boosts by half again", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.3
		loop.generationStats = flatStats(stagnationWindow, 7.5)

		loop.checkForStagnation(ctx, stagnationWindow)

		assert.InDelta(t, 0.45, loop.mutationRate, 1e-9)
	})

	t.Run("boost is capped at one half", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.4
		loop.generationStats = flatStats(stagnationWindow, 7.5)

		loop.checkForStagnation(ctx, stagnationWindow)

		assert.InDelta(t, 0.5, loop.mutationRate, 1e-9)
	})

	t.Run("partial stagnation gets a smaller boost", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.3
		stats := flatStats(stagnationWindow, 7.5)
		stats[0].AvgFitness = 1 // 2 distinct values in the window
		loop.generationStats = stats

		loop.checkForStagnation(ctx, stagnationWindow)

		assert.InDelta(t, 0.36, loop.mutationRate, 1e-9)
	})

	t.Run("diverse window leaves the rate alone", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.3
		stats := flatStats(stagnationWindow, 0)
		for i := range stats {
			stats[i].AvgFitness = float64(i)
		}
		loop.generationStats = stats

		loop.checkForStagnation(ctx, stagnationWindow)

		assert.InDelta(t, 0.3, loop.mutationRate, 1e-9)
	})

	t.Run("too few generations to judge", func(t *testing.T) {
		loop := newTestLoop(t, nil)
		loop.mutationRate = 0.3
		loop.generationStats = flatStats(stagnationWindow-1, 7.5)

		loop.checkForStagnation(ctx, stagnationWindow-1)

		assert.InDelta(t, 0.3, loop.mutationRate, 1e-9)
	})
}

func TestLoopRun(t *testing.T) {
	ctx := context.Background()

	t.Run("full run produces a complete report", func(t *testing.T) {
		loop := newTestLoop(t, func(c *Config) {
			c.IterationLimit = 500
		})

		result, err := loop.Run(ctx)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, loop.RunID(), result.RunID)

		// One statistics entry and one rate-history entry per generation.
		require.Len(t, result.GenerationStatistics, 3)
		for i, stats := range result.GenerationStatistics {
			assert.Equal(t, i, stats.Generation)
			assert.GreaterOrEqual(t, stats.AvgFitness, 0.0)
		}
		require.Len(t, result.MutationRateHistory, 3)
		assert.Equal(t, 1.0, result.MutationRateHistory[0])
		for _, rate := range result.MutationRateHistory {
			assert.GreaterOrEqual(t, rate, loop.config.MutationRateLowerLimit)
			assert.LessOrEqual(t, rate, 1.0)
		}

		// The surviving population is bounded and well-formed.
		population := loop.Population()
		assert.LessOrEqual(t, population.Len(), loop.config.PopulationSize)
		assert.Greater(t, population.Len(), 0)
		for _, member := range population.Members() {
			assert.Len(t, member, 25)
		}

		assert.Greater(t, result.CacheStats.Evaluations, int64(0))
	})

	t.Run("results are ranked with the top result first", func(t *testing.T) {
		loop := newTestLoop(t, func(c *Config) {
			c.IterationLimit = 500
		})

		result, err := loop.Run(ctx)
		require.NoError(t, err)

		top, ok := result.TopResult()
		require.True(t, ok)

		finals := result.FinalResults()
		require.NotEmpty(t, finals)
		assert.LessOrEqual(t, len(finals), topResultCount)
		for _, r := range finals {
			assert.GreaterOrEqual(t, top.FitnessScore, r.FitnessScore)
		}

		// Generation 0 is reported alongside the final ranking.
		initialCount := 0
		for _, r := range result.Results {
			if r.IsInitialGeneration {
				initialCount++
			}
		}
		assert.Greater(t, initialCount, 0)
	})

	t.Run("same seed reproduces the same statistics", func(t *testing.T) {
		run := func() []GenerationStatistics {
			loop := newTestLoop(t, func(c *Config) {
				c.IterationLimit = 500
			})
			result, err := loop.Run(ctx)
			require.NoError(t, err)
			return result.GenerationStatistics
		}

		assert.Equal(t, run(), run())
	})

	t.Run("canceled context aborts the run", func(t *testing.T) {
		loop := newTestLoop(t, func(c *Config) {
			c.IterationLimit = 500
		})

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := loop.Run(canceled)

		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.Canceled))
	})
}

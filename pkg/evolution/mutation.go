package evolution

import (
	"context"
	"math"

	"github.com/XiaoConstantine/evolife/pkg/life"
	"github.com/XiaoConstantine/evolife/pkg/logging"
)

// mutate draws one mutation strategy from the weighted menu and applies
// it, returning a new configuration.
func (l *Loop) mutate(ctx context.Context, config life.Configuration) life.Configuration {
	strategy := mutationStrategy(l.pickWeighted(strategyMenuWeights))
	logging.GetLogger().Debug(ctx, "using %s mutation", strategy)

	switch strategy {
	case mutationClusters:
		return l.mutateClusters(config)
	case mutationHarsh:
		return l.mutateHarsh(config)
	default:
		return l.mutateBasic(config)
	}
}

// cellFlipProbability amplifies the current mutation rate for per-cell
// flips, capped at a coin flip.
func (l *Loop) cellFlipProbability() float64 {
	return math.Min(0.5, l.mutationRate*5)
}

// mutateBasic flips each cell independently.
func (l *Loop) mutateBasic(config life.Configuration) life.Configuration {
	p := l.cellFlipProbability()
	mutated := config.Clone()
	for i := range mutated {
		if l.rng.Float64() < p {
			mutated[i] = 1 - mutated[i]
		}
	}
	return mutated
}

// mutateClusters repeatedly picks a random 3x3 neighborhood and flips all
// nine cells at once, with the same per-attempt probability as a basic
// flip. Attempts scale with the grid size.
func (l *Loop) mutateClusters(config life.Configuration) life.Configuration {
	n := l.config.GridSize
	p := l.cellFlipProbability()
	mutated := config.Clone()

	for attempt := 0; attempt < n; attempt++ {
		if l.rng.Float64() >= p {
			continue
		}
		centerRow := l.rng.Intn(n)
		centerCol := l.rng.Intn(n)
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				row := (centerRow + dr + n) % n
				col := (centerCol + dc + n) % n
				idx := row*n + col
				mutated[idx] = 1 - mutated[idx]
			}
		}
	}
	return mutated
}

// mutateHarsh reassigns one random contiguous wrapped run of cells to
// uniformly random values.
func (l *Loop) mutateHarsh(config life.Configuration) life.Configuration {
	mutated := config.Clone()
	total := len(mutated)

	runLength := 1 + l.rng.Intn(total)
	start := l.rng.Intn(total)
	for j := 0; j < runLength; j++ {
		mutated[(start+j)%total] = uint8(l.rng.Intn(2))
	}
	return mutated
}

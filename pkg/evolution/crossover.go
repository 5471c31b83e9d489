package evolution

import (
	"context"

	"github.com/XiaoConstantine/evolife/pkg/life"
	"github.com/XiaoConstantine/evolife/pkg/logging"
)

// crossover draws one crossover strategy from the weighted menu and
// produces a child from two parents.
func (l *Loop) crossover(ctx context.Context, parent1, parent2 life.Configuration) life.Configuration {
	strategy := crossoverStrategy(l.pickWeighted(strategyMenuWeights))
	logging.GetLogger().Debug(ctx, "using %s crossover", strategy)

	switch strategy {
	case crossoverRows:
		return l.crossoverRows(ctx, parent1, parent2)
	case crossoverBlocks:
		return l.crossoverBlocks(ctx, parent1, parent2)
	default:
		return l.crossoverCells(parent1, parent2)
	}
}

// crossoverCells alternates parents cell by cell on the parity of the
// flat index.
func (l *Loop) crossoverCells(parent1, parent2 life.Configuration) life.Configuration {
	child := make(life.Configuration, len(parent1))
	for i := range child {
		if i%2 == 0 {
			child[i] = parent1[i]
		} else {
			child[i] = parent2[i]
		}
	}
	return child
}

// crossoverRows alternates whole rows between parents: even rows come
// from parent2, odd rows from parent1.
func (l *Loop) crossoverRows(ctx context.Context, parent1, parent2 life.Configuration) life.Configuration {
	n := l.config.GridSize
	child := make(life.Configuration, 0, n*n)
	for row := 0; row < n; row++ {
		source := parent1
		if row%2 == 0 {
			source = parent2
		}
		child = append(child, source[row*n:(row+1)*n]...)
	}
	return l.repairChild(ctx, child)
}

// crossoverBlocks partitions each parent into N row-blocks, weights
// blocks by live-cell density, assigns roughly half the blocks from each
// parent with density-weighted sampling, and breaks ties for unassigned
// blocks with a coin flip.
func (l *Loop) crossoverBlocks(ctx context.Context, parent1, parent2 life.Configuration) life.Configuration {
	n := l.config.GridSize
	total := n * n

	alive1 := make([]int, n)
	alive2 := make([]int, n)
	sum1, sum2 := 0, 0
	for block := 0; block < n; block++ {
		alive1[block] = parent1[block*n : (block+1)*n].AliveCount()
		alive2[block] = parent2[block*n : (block+1)*n].AliveCount()
		sum1 += alive1[block]
		sum2 += alive2[block]
	}

	probs1 := blockProbabilities(alive1, sum1, total)
	probs2 := blockProbabilities(alive2, sum2, total)

	// Roughly half the blocks (rounded up) come from parent1.
	fromParent1 := make(map[int]bool, n)
	for i := 0; i < n/2+n%2; i++ {
		fromParent1[l.pickWeighted(probs1)] = true
	}

	remaining := make([]int, 0, n)
	remainingProbs := make([]float64, 0, n)
	for block := 0; block < n; block++ {
		if !fromParent1[block] {
			remaining = append(remaining, block)
			remainingProbs = append(remainingProbs, probs2[block])
		}
	}

	fromParent2 := make(map[int]bool, n)
	for i := 0; i < n/2 && len(remaining) > 0; i++ {
		fromParent2[remaining[l.pickWeighted(remainingProbs)]] = true
	}

	child := make(life.Configuration, 0, total)
	for block := 0; block < n; block++ {
		switch {
		case fromParent1[block]:
			child = append(child, parent1[block*n:(block+1)*n]...)
		case fromParent2[block]:
			child = append(child, parent2[block*n:(block+1)*n]...)
		case l.rng.Float64() < 0.5:
			child = append(child, parent1[block*n:(block+1)*n]...)
		default:
			child = append(child, parent2[block*n:(block+1)*n]...)
		}
	}

	return l.repairChild(ctx, child)
}

// blockProbabilities assigns each block a weight proportional to its
// live-cell density. Empty blocks keep a small floor weight so every
// block stays selectable.
func blockProbabilities(alive []int, sum, total int) []float64 {
	probs := make([]float64, len(alive))
	for i, count := range alive {
		if sum > 0 && count > 0 {
			probs[i] = float64(count) / float64(sum)
		} else {
			probs[i] = 1 / float64(total)
		}
	}
	return probs
}

// repairChild pads a wrong-length child with dead cells. Block arithmetic
// cannot misalign for square row-blocks, but the padding is kept as a
// tolerated legacy repair and logged whenever it fires.
func (l *Loop) repairChild(ctx context.Context, child life.Configuration) life.Configuration {
	total := l.config.GridSize * l.config.GridSize
	if len(child) == total {
		return child
	}

	logging.GetLogger().Warn(ctx, "crossover produced child of length %d, expected %d; padding with dead cells",
		len(child), total)
	repaired := make(life.Configuration, total)
	copy(repaired, child)
	return repaired
}

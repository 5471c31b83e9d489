package evolution

import (
	"context"
	"sort"

	"github.com/XiaoConstantine/evolife/pkg/errors"
	"github.com/XiaoConstantine/evolife/pkg/life"
	"github.com/XiaoConstantine/evolife/pkg/logging"
)

// selectParents draws one selection strategy from the weighted menu and
// uses it to pick both parents for one offspring.
func (l *Loop) selectParents(ctx context.Context, members []life.Configuration) (life.Configuration, life.Configuration) {
	strategy := selectionStrategy(l.pickWeighted(strategyMenuWeights))
	logging.GetLogger().Debug(ctx, "using %s selection", strategy)

	parent1 := l.selectOne(ctx, strategy, members)
	parent2 := l.selectOne(ctx, strategy, members)
	return parent1, parent2
}

func (l *Loop) selectOne(ctx context.Context, strategy selectionStrategy, members []life.Configuration) life.Configuration {
	switch strategy {
	case selectionRoulette:
		selected, err := l.rouletteSelect(ctx, members)
		if err != nil {
			// All-zero total fitness gives the wheel nothing to work
			// with; recover locally with a uniform random choice.
			if errors.HasCode(err, errors.DegenerateSelection) {
				logging.GetLogger().Debug(ctx, "degenerate roulette selection, falling back to uniform choice")
			} else {
				logging.GetLogger().Error(ctx, "roulette selection failed: %v", err)
			}
			return members[l.rng.Intn(len(members))]
		}
		return selected
	case selectionRank:
		return l.rankSelect(ctx, members)
	default:
		return l.tournamentSelect(ctx, members)
	}
}

// tournamentSelect samples tournamentSize members without replacement and
// keeps the fittest.
func (l *Loop) tournamentSelect(ctx context.Context, members []life.Configuration) life.Configuration {
	size := l.config.TournamentSize
	if size > len(members) {
		size = len(members)
	}

	var best life.Configuration
	bestFitness := 0.0
	for _, idx := range l.rng.Perm(len(members))[:size] {
		candidate := members[idx]
		score := l.fitnessOf(ctx, candidate)
		if best == nil || score > bestFitness {
			best = candidate
			bestFitness = score
		}
	}
	return best
}

// rouletteSelect picks a member with probability proportional to fitness.
// Returns a DegenerateSelection error when total fitness is zero.
func (l *Loop) rouletteSelect(ctx context.Context, members []life.Configuration) (life.Configuration, error) {
	scores := make([]float64, len(members))
	total := 0.0
	for i, member := range members {
		scores[i] = l.fitnessOf(ctx, member)
		total += scores[i]
	}

	if total == 0 {
		return nil, errors.New(errors.DegenerateSelection, "total population fitness is zero")
	}

	spin := l.rng.Float64() * total
	cumulative := 0.0
	for i, score := range scores {
		cumulative += score
		if cumulative >= spin {
			return members[i], nil
		}
	}
	return members[len(members)-1], nil
}

// rankSelect sorts members by fitness descending and picks with
// probability proportional to rank position.
func (l *Loop) rankSelect(ctx context.Context, members []life.Configuration) life.Configuration {
	type scoredMember struct {
		config life.Configuration
		score  float64
	}
	scored := make([]scoredMember, len(members))
	for i, member := range members {
		scored[i] = scoredMember{config: member, score: l.fitnessOf(ctx, member)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	weights := make([]float64, len(scored))
	for i := range weights {
		weights[i] = float64(i + 1)
	}
	return scored[l.pickWeighted(weights)].config
}

// fitnessOf reads a member's score through the evaluation cache. Members
// reaching selection have already been evaluated, so this is a cache hit.
func (l *Loop) fitnessOf(ctx context.Context, config life.Configuration) float64 {
	record, err := l.evaluator.Evaluate(ctx, config)
	if err != nil {
		logging.GetLogger().Error(ctx, "fitness lookup failed: %v", err)
		return 0
	}
	return record.Fitness
}

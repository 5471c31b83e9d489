package evolution

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/XiaoConstantine/evolife/pkg/cache"
	"github.com/XiaoConstantine/evolife/pkg/life"
)

// topResultCount bounds how many final-population members are reported.
const topResultCount = 10

// Result describes one configuration selected for reporting, with the
// full trajectory so an external viewer can replay the run.
type Result struct {
	ID                  string               `json:"id"`
	FitnessScore        float64              `json:"fitness_score"`
	Lifespan            int                  `json:"lifespan"`
	MaxAliveCells       int                  `json:"max_alive_cells"`
	AliveGrowth         float64              `json:"alive_growth"`
	Stableness          float64              `json:"stableness"`
	InitialLivingCells  int                  `json:"initial_living_cells"`
	Trajectory          []life.Configuration `json:"trajectory"`
	Config              life.Configuration   `json:"config"`
	IsInitialGeneration bool                 `json:"is_initial_generation"`
}

// RunResult is everything a completed run exposes to external charting
// and visualization: ranked result records (final top members first, then
// the ranked generation-0 members), the per-generation statistics table,
// and the mutation-rate history.
type RunResult struct {
	RunID                string                 `json:"run_id"`
	Results              []Result               `json:"results"`
	GenerationStatistics []GenerationStatistics `json:"generation_statistics"`
	MutationRateHistory  []float64              `json:"mutation_rate_history"`
	CacheStats           cache.Stats            `json:"cache_stats"`
}

// buildResult assembles the final report. Every configuration involved
// has already been evaluated, so all lookups are cache hits.
func (l *Loop) buildResult(ctx context.Context) *RunResult {
	l.mu.RLock()
	final := l.population.Members()
	initial := make([]life.Configuration, len(l.initialPopulation))
	copy(initial, l.initialPopulation)
	l.mu.RUnlock()

	topCount := topResultCount
	if topCount > len(final) {
		topCount = len(final)
	}

	results := make([]Result, 0, topCount+len(initial))
	for _, config := range l.rankByFitness(ctx, final)[:topCount] {
		results = append(results, l.resultFor(ctx, config, false))
	}
	for _, config := range l.rankByFitness(ctx, initial) {
		results = append(results, l.resultFor(ctx, config, true))
	}

	return &RunResult{
		RunID:                l.runID,
		Results:              results,
		GenerationStatistics: l.GenerationStats(),
		MutationRateHistory:  l.MutationRateHistory(),
		CacheStats:           l.evaluator.Stats(),
	}
}

func (l *Loop) resultFor(ctx context.Context, config life.Configuration, isInitial bool) Result {
	record, err := l.evaluator.Evaluate(ctx, config)
	if err != nil {
		// Members of the population are validated by construction.
		return Result{ID: uuid.New().String(), Config: config, IsInitialGeneration: isInitial}
	}

	return Result{
		ID:                  uuid.New().String(),
		FitnessScore:        record.Fitness,
		Lifespan:            record.Summary.Lifespan,
		MaxAliveCells:       record.Summary.MaxAliveCells,
		AliveGrowth:         record.Summary.AliveGrowth,
		Stableness:          record.Summary.Stableness,
		InitialLivingCells:  record.Summary.InitialLivingCells,
		Trajectory:          record.Summary.Trajectory,
		Config:              config,
		IsInitialGeneration: isInitial,
	}
}

// TopResult returns the highest-ranked final result, if any.
func (r *RunResult) TopResult() (Result, bool) {
	for _, result := range r.Results {
		if !result.IsInitialGeneration {
			return result, true
		}
	}
	return Result{}, false
}

// FinalResults returns only the final-population records, ranked.
func (r *RunResult) FinalResults() []Result {
	out := make([]Result, 0, topResultCount)
	for _, result := range r.Results {
		if !result.IsInitialGeneration {
			out = append(out, result)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FitnessScore > out[j].FitnessScore
	})
	return out
}

// Package cache memoizes simulation results so each distinct configuration
// is simulated at most once per optimization run.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/XiaoConstantine/evolife/pkg/fitness"
	"github.com/XiaoConstantine/evolife/pkg/life"
)

// Record pairs a simulation summary with its fitness score. Records are
// immutable once stored.
type Record struct {
	Summary life.Summary
	Fitness float64
}

// Stats contains evaluation cache counters.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evaluations int64 `json:"evaluations"`
	Size        int64 `json:"size"`
}

// Evaluator runs simulations on demand and caches the outcome keyed by
// configuration value. The cache is append-only for the lifetime of a run
// and never evicts. Safe for concurrent callers: a race on the same key
// costs a duplicate simulation but the first stored record wins, which is
// harmless because results are deterministic.
type Evaluator struct {
	gridSize             int
	model                *fitness.Model
	iterationLimit       int
	maxStableGenerations int

	mu      sync.RWMutex
	records map[string]*Record

	hits        atomic.Int64
	misses      atomic.Int64
	evaluations atomic.Int64
}

// EvaluatorOption customizes an evaluator.
type EvaluatorOption func(*Evaluator)

// WithIterationLimit overrides the simulation iteration budget.
func WithIterationLimit(limit int) EvaluatorOption {
	return func(e *Evaluator) {
		e.iterationLimit = limit
	}
}

// WithMaxStableGenerations overrides the confirmation window length.
func WithMaxStableGenerations(n int) EvaluatorOption {
	return func(e *Evaluator) {
		e.maxStableGenerations = n
	}
}

// NewEvaluator creates an empty evaluation cache for one optimization run.
func NewEvaluator(gridSize int, model *fitness.Model, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		gridSize:             gridSize,
		model:                model,
		iterationLimit:       life.DefaultIterationLimit,
		maxStableGenerations: life.DefaultMaxStableGenerations,
		records:              make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the cached record for the configuration, simulating it
// first if this is the first time it is seen. Repeat calls are idempotent
// and side-effect free. Returns an InvalidConfiguration error when the
// configuration length does not match the grid size.
func (e *Evaluator) Evaluate(ctx context.Context, config life.Configuration) (*Record, error) {
	if err := config.Validate(e.gridSize); err != nil {
		return nil, err
	}

	key := config.Key()

	e.mu.RLock()
	record, ok := e.records[key]
	e.mu.RUnlock()
	if ok {
		e.hits.Add(1)
		return record, nil
	}
	e.misses.Add(1)

	// Simulate outside the lock; runs can take a while.
	sim, err := life.NewSimulation(e.gridSize, config,
		life.WithIterationLimit(e.iterationLimit),
		life.WithMaxStableGenerations(e.maxStableGenerations))
	if err != nil {
		return nil, err
	}
	summary := sim.Run(ctx)
	e.evaluations.Add(1)

	fresh := &Record{
		Summary: summary,
		Fitness: e.model.Score(
			summary.Lifespan,
			summary.MaxAliveCells,
			summary.AliveGrowth,
			summary.Stableness,
			summary.InitialLivingCells,
		),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if existing, ok := e.records[key]; ok {
		// Another goroutine finished first; keep its record.
		return existing, nil
	}
	e.records[key] = fresh
	return fresh, nil
}

// Lookup returns the cached record without triggering a simulation.
func (e *Evaluator) Lookup(config life.Configuration) (*Record, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	record, ok := e.records[config.Key()]
	return record, ok
}

// Len returns the number of distinct configurations evaluated so far.
func (e *Evaluator) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Stats returns a snapshot of the cache counters.
func (e *Evaluator) Stats() Stats {
	e.mu.RLock()
	size := int64(len(e.records))
	e.mu.RUnlock()

	return Stats{
		Hits:        e.hits.Load(),
		Misses:      e.misses.Load(),
		Evaluations: e.evaluations.Load(),
		Size:        size,
	}
}

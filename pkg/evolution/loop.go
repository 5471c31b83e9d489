// Package evolution implements a genetic search over Game of Life starting
// configurations: population management, stochastic selection, crossover
// and mutation strategies, adaptive mutation-rate control, stagnation
// detection, and periodic diversity injection.
package evolution

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/XiaoConstantine/evolife/pkg/cache"
	"github.com/XiaoConstantine/evolife/pkg/errors"
	"github.com/XiaoConstantine/evolife/pkg/fitness"
	"github.com/XiaoConstantine/evolife/pkg/life"
	"github.com/XiaoConstantine/evolife/pkg/logging"
)

// stagnationWindow is the number of trailing generations inspected when
// checking for fitness stagnation.
const stagnationWindow = 10

// Config contains configuration options for the evolution loop.
type Config struct {
	GridSize       int `json:"grid_size"`       // Default: 10
	PopulationSize int `json:"population_size"` // Default: 20
	Generations    int `json:"generations"`     // Default: 50

	// Mutation rate controls
	InitialMutationRate    float64 `json:"initial_mutation_rate"`     // Default: 1.0
	MutationRateLowerLimit float64 `json:"mutation_rate_lower_limit"` // Default: 0.2

	// Strategy parameters
	TournamentSize int `json:"tournament_size"` // Default: 3

	// Simulation bounds
	IterationLimit       int `json:"iteration_limit"`        // Default: 150000
	MaxStableGenerations int `json:"max_stable_generations"` // Default: 10

	// Concurrency and reproducibility
	MaxGoroutines int   `json:"max_goroutines"` // Default: 8
	Seed          int64 `json:"seed"`           // 0 means time-seeded

	Weights fitness.Weights `json:"weights"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	return &Config{
		GridSize:               10,
		PopulationSize:         20,
		Generations:            50,
		InitialMutationRate:    1.0,
		MutationRateLowerLimit: 0.2,
		TournamentSize:         3,
		IterationLimit:         life.DefaultIterationLimit,
		MaxStableGenerations:   life.DefaultMaxStableGenerations,
		MaxGoroutines:          8,
		Weights:                fitness.DefaultWeights(),
	}
}

// Validate reports precondition violations before a run starts.
func (c *Config) Validate() error {
	switch {
	case c.GridSize < 3:
		return errors.New(errors.ValidationFailed, "grid size must be at least 3")
	case c.PopulationSize < 1:
		return errors.New(errors.ValidationFailed, "population size must be positive")
	case c.Generations < 1:
		return errors.New(errors.ValidationFailed, "generation count must be positive")
	case c.InitialMutationRate <= 0 || c.InitialMutationRate > 1:
		return errors.New(errors.ValidationFailed, "initial mutation rate must be in (0, 1]")
	case c.MutationRateLowerLimit <= 0 || c.MutationRateLowerLimit > 1:
		return errors.New(errors.ValidationFailed, "mutation rate lower limit must be in (0, 1]")
	case c.TournamentSize < 1:
		return errors.New(errors.ValidationFailed, "tournament size must be positive")
	case c.IterationLimit < 1:
		return errors.New(errors.ValidationFailed, "iteration limit must be positive")
	case c.MaxStableGenerations < 1:
		return errors.New(errors.ValidationFailed, "max stable generations must be positive")
	case c.MaxGoroutines < 1:
		return errors.New(errors.ValidationFailed, "max goroutines must be positive")
	}
	return nil
}

// Loop drives generation-by-generation population turnover. A Loop owns
// its evaluation cache and statistics for the lifetime of one run; it is
// not shared across concurrent optimization runs.
type Loop struct {
	config    *Config
	rng       *rand.Rand
	evaluator *cache.Evaluator
	runID     string

	mu                  sync.RWMutex
	population          *Population
	initialPopulation   []life.Configuration
	generationStats     []GenerationStatistics
	mutationRateHistory []float64
	mutationRate        float64
}

// NewLoop creates an evolution loop, validating preconditions up front.
func NewLoop(config *Config) (*Loop, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	model := fitness.NewModel(config.Weights)
	return &Loop{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
		evaluator: cache.NewEvaluator(config.GridSize, model,
			cache.WithIterationLimit(config.IterationLimit),
			cache.WithMaxStableGenerations(config.MaxStableGenerations)),
		runID:        uuid.New().String(),
		population:   NewPopulation(),
		mutationRate: config.InitialMutationRate,
	}, nil
}

// RunID identifies this optimization run.
func (l *Loop) RunID() string {
	return l.runID
}

// MutationRate returns the rate that will be used for the next generation.
func (l *Loop) MutationRate() float64 {
	return l.mutationRate
}

// Population returns the current population. The swap between generations
// is atomic, so readers never observe a half-replaced set.
func (l *Loop) Population() *Population {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.population
}

// GenerationStats returns a copy of the per-generation statistics table.
func (l *Loop) GenerationStats() []GenerationStatistics {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]GenerationStatistics, len(l.generationStats))
	copy(out, l.generationStats)
	return out
}

// MutationRateHistory returns a copy of the rate used in each generation.
func (l *Loop) MutationRateHistory() []float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]float64, len(l.mutationRateHistory))
	copy(out, l.mutationRateHistory)
	return out
}

// Run executes the full search and returns the ranked results.
func (l *Loop) Run(ctx context.Context) (*RunResult, error) {
	ctx = logging.WithRunID(ctx, l.runID)
	logger := logging.GetLogger()
	logger.Info(ctx, "starting evolution: grid=%d population=%d generations=%d",
		l.config.GridSize, l.config.PopulationSize, l.config.Generations)

	if err := l.initialize(logging.WithGeneration(ctx, 0)); err != nil {
		return nil, err
	}

	for generation := 1; generation < l.config.Generations; generation++ {
		genCtx := logging.WithGeneration(ctx, generation)
		if err := errors.CheckContext(genCtx, "evolution run"); err != nil {
			return nil, err
		}

		if err := l.populate(genCtx); err != nil {
			return nil, err
		}
		if err := l.computeGeneration(genCtx, generation); err != nil {
			return nil, err
		}
		l.adjustMutationRate(generation)
		l.checkForStagnation(genCtx, generation)
	}

	result := l.buildResult(ctx)
	logger.Info(ctx, "evolution finished: %d distinct configurations simulated", l.evaluator.Len())
	return result, nil
}

// initialize seeds generation 0 from the three generator families in
// roughly equal thirds (the remainder goes to clusters) and records its
// statistics.
func (l *Loop) initialize(ctx context.Context) error {
	third := l.config.PopulationSize / 3
	remainder := l.config.PopulationSize % 3

	seeded := NewPopulation()
	seeded.AddAll(l.generateVariety(third+remainder, third, third)...)

	l.mu.Lock()
	l.population = seeded
	l.initialPopulation = seeded.Members()
	l.mu.Unlock()

	logging.GetLogger().Info(ctx, "seeded initial population: %d unique members", seeded.Len())
	return l.computeGeneration(ctx, 0)
}

// populate produces the next generation: offspring from the current
// members, an optional diversity batch, then a ranked merge that keeps
// the top unique configurations.
func (l *Loop) populate(ctx context.Context) error {
	members := l.Population().Members()

	children := make([]life.Configuration, 0, l.config.PopulationSize)
	for i := 0; i < l.config.PopulationSize; i++ {
		parent1, parent2 := l.selectParents(ctx, members)
		child := l.crossover(ctx, parent1, parent2)
		if l.rng.Float64() < l.mutationRate {
			child = l.mutate(ctx, child)
		}
		children = append(children, child)
	}

	candidates := NewPopulation()
	candidates.AddAll(members...)
	candidates.AddAll(children...)

	// Periodically refresh the pool with fresh individuals to counter
	// premature convergence.
	if len(l.generationStats)%5 == 0 {
		batch := l.config.PopulationSize / 4
		perFamily := batch / 3
		candidates.AddAll(l.generateVariety(perFamily, perFamily, perFamily)...)
		logging.GetLogger().Info(ctx, "injected diversity batch, candidate pool now %d", candidates.Len())
	}

	if err := l.evaluateAll(ctx, candidates.Members()); err != nil {
		return err
	}

	ranked := l.rankByFitness(ctx, candidates.Members())
	next := NewPopulation()
	for _, config := range ranked {
		if next.Len() >= l.config.PopulationSize {
			break
		}
		next.Add(config)
	}

	l.mu.Lock()
	l.population = next
	l.mu.Unlock()
	return nil
}

// evaluateAll fans candidate evaluation out across a bounded worker pool.
// The cache makes repeat evaluations free and concurrent inserts safe.
func (l *Loop) evaluateAll(ctx context.Context, configs []life.Configuration) error {
	p := pool.New().WithMaxGoroutines(l.config.MaxGoroutines)

	var mu sync.Mutex
	var firstErr error
	for _, config := range configs {
		config := config
		p.Go(func() {
			if _, err := l.evaluator.Evaluate(ctx, config); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
	}
	p.Wait()

	return firstErr
}

// rankByFitness returns the configurations sorted by fitness descending.
// Ties keep their relative order so ranking stays deterministic for a
// fixed seed.
func (l *Loop) rankByFitness(ctx context.Context, configs []life.Configuration) []life.Configuration {
	ranked := make([]life.Configuration, len(configs))
	copy(ranked, configs)
	scores := make(map[string]float64, len(configs))
	for _, config := range configs {
		scores[config.Key()] = l.fitnessOf(ctx, config)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].Key()] > scores[ranked[j].Key()]
	})
	return ranked
}

// computeGeneration evaluates the current population and appends its
// aggregate statistics and the mutation rate in effect.
func (l *Loop) computeGeneration(ctx context.Context, generation int) error {
	members := l.Population().Members()
	if len(members) == 0 {
		return errors.New(errors.EmptyPopulation, "population is empty")
	}
	if err := l.evaluateAll(ctx, members); err != nil {
		return err
	}

	fitnesses := make([]float64, 0, len(members))
	lifespans := make([]float64, 0, len(members))
	growths := make([]float64, 0, len(members))
	maxAlive := make([]float64, 0, len(members))
	stableness := make([]float64, 0, len(members))
	initialLiving := make([]float64, 0, len(members))

	for _, member := range members {
		record, err := l.evaluator.Evaluate(ctx, member)
		if err != nil {
			return err
		}
		fitnesses = append(fitnesses, record.Fitness)
		lifespans = append(lifespans, float64(record.Summary.Lifespan))
		growths = append(growths, record.Summary.AliveGrowth)
		maxAlive = append(maxAlive, float64(record.Summary.MaxAliveCells))
		stableness = append(stableness, record.Summary.Stableness)
		initialLiving = append(initialLiving, float64(record.Summary.InitialLivingCells))
	}

	stats := GenerationStatistics{
		Generation:            generation,
		AvgFitness:            mean(fitnesses),
		StdFitness:            stdDev(fitnesses),
		AvgLifespan:           mean(lifespans),
		StdLifespan:           stdDev(lifespans),
		AvgAliveGrowth:        mean(growths),
		StdAliveGrowth:        stdDev(growths),
		AvgMaxAliveCells:      mean(maxAlive),
		StdMaxAliveCells:      stdDev(maxAlive),
		AvgStableness:         mean(stableness),
		StdStableness:         stdDev(stableness),
		AvgInitialLivingCells: mean(initialLiving),
		StdInitialLivingCells: stdDev(initialLiving),
	}

	l.mu.Lock()
	l.mutationRateHistory = append(l.mutationRateHistory, l.mutationRate)
	l.generationStats = append(l.generationStats, stats)
	l.mu.Unlock()

	logging.GetLogger().Info(ctx, "generation %d: members=%d avg_fitness=%.4f avg_lifespan=%.2f mutation_rate=%.3f",
		generation, len(members), stats.AvgFitness, stats.AvgLifespan, l.mutationRate)
	return nil
}

// adjustMutationRate raises the rate when average fitness regresses and
// lowers it when fitness improves, clamped to [lower limit, 1].
func (l *Loop) adjustMutationRate(generation int) {
	if generation < 1 || generation >= len(l.generationStats) {
		return
	}

	previous := l.generationStats[generation-1].AvgFitness
	current := l.generationStats[generation].AvgFitness
	ratio := previous / math.Max(1, current)

	l.mutationRate = math.Max(l.config.MutationRateLowerLimit, math.Min(1, l.mutationRate*ratio))
}

// checkForStagnation inspects the trailing window of average fitness
// values and boosts the mutation rate when the search has flatlined.
func (l *Loop) checkForStagnation(ctx context.Context, generation int) {
	if generation < stagnationWindow {
		return
	}

	unique := make(map[float64]struct{}, stagnationWindow)
	for _, stats := range l.generationStats[generation-stagnationWindow : generation] {
		unique[stats.AvgFitness] = struct{}{}
	}

	logger := logging.GetLogger()
	switch {
	case len(unique) == 1:
		logger.Warn(ctx, "stagnation detected over last %d generations, boosting mutation rate", stagnationWindow)
		l.mutationRate = math.Min(0.5, l.mutationRate*1.5)
	case len(unique) < stagnationWindow/2:
		logger.Info(ctx, "partial stagnation detected, raising mutation rate")
		l.mutationRate = math.Min(0.5, l.mutationRate*1.2)
	}

	l.mutationRate = math.Max(l.mutationRate, l.config.MutationRateLowerLimit)
}

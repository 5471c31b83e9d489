package life

import (
	"context"
	"math"

	"github.com/XiaoConstantine/evolife/pkg/logging"
)

// RunState describes where a simulation is in its lifecycle.
type RunState int

const (
	// Running means no terminal condition has been detected yet.
	Running RunState = iota
	// Static means the grid stopped changing (or emptied out).
	Static
	// Periodic means the grid revisited a previously seen state.
	Periodic
	// IterationExhausted means the iteration budget ran out while the
	// grid was still evolving.
	IterationExhausted
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Static:
		return "static"
	case Periodic:
		return "periodic"
	case IterationExhausted:
		return "iteration_exhausted"
	default:
		return "unknown"
	}
}

const (
	// DefaultIterationLimit bounds the total number of simulated generations.
	DefaultIterationLimit = 150000
	// DefaultMaxStableGenerations is the length of the confirmation window
	// recorded after a terminal condition is first detected.
	DefaultMaxStableGenerations = 10
)

// Summary holds the immutable outcome of one simulation run.
type Summary struct {
	State              RunState
	Lifespan           int
	MaxAliveCells      int
	AliveGrowth        float64
	Stableness         float64
	IsStatic           bool
	IsPeriodic         bool
	InitialLivingCells int

	// Trajectory records the grid once per simulated generation, including
	// the confirmation window after termination was detected. AliveHistory
	// is the parallel sequence of live-cell counts.
	Trajectory   []Configuration
	AliveHistory []int
}

// Simulation drives one configuration from its initial state until it
// becomes static, periodic, or exhausts the iteration budget. A Simulation
// owns its working grid exclusively and is not safe for concurrent use.
type Simulation struct {
	gridSize             int
	grid                 Configuration
	initial              Configuration
	state                RunState
	iterationLimit       int
	maxStableGenerations int

	stableCount  int
	lifespan     int
	trajectory   []Configuration
	aliveHistory []int
	visited      map[string]struct{}
}

// SimulationOption customizes a simulation.
type SimulationOption func(*Simulation)

// WithIterationLimit overrides the default iteration budget.
func WithIterationLimit(limit int) SimulationOption {
	return func(s *Simulation) {
		s.iterationLimit = limit
	}
}

// WithMaxStableGenerations overrides the confirmation window length.
func WithMaxStableGenerations(n int) SimulationOption {
	return func(s *Simulation) {
		s.maxStableGenerations = n
	}
}

// NewSimulation creates a simulation for one initial configuration.
// The initial configuration must have exactly gridSize*gridSize cells.
func NewSimulation(gridSize int, initial Configuration, opts ...SimulationOption) (*Simulation, error) {
	if err := initial.Validate(gridSize); err != nil {
		return nil, err
	}

	s := &Simulation{
		gridSize:             gridSize,
		grid:                 initial.Clone(),
		initial:              initial.Clone(),
		state:                Running,
		iterationLimit:       DefaultIterationLimit,
		maxStableGenerations: DefaultMaxStableGenerations,
		visited:              map[string]struct{}{initial.Key(): {}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the current lifecycle state.
func (s *Simulation) State() RunState {
	return s.state
}

// Run drives the simulation to completion and returns its summary.
//
// Each loop iteration records the current generation, then advances the
// grid. Once a terminal condition is detected the run keeps recording for
// up to maxStableGenerations extra generations so the settled behavior is
// visible in the trajectory. Lifespan counts the distinct states visited
// beyond the initial one before the terminal condition was first detected.
func (s *Simulation) Run(ctx context.Context) Summary {
	logger := logging.GetLogger()

	for iter := 0; iter < s.iterationLimit; iter++ {
		alive := s.grid.AliveCount()

		// A dead grid can never change again.
		if alive == 0 {
			if s.state == Running {
				s.state = Static
				logger.Debug(ctx, "all cells dead, grid is static")
			}
			s.record(0)
			break
		}

		s.record(alive)

		if s.state == Static || s.state == Periodic {
			s.stableCount++
			if s.stableCount >= s.maxStableGenerations {
				break
			}
		} else if iter > 0 {
			s.lifespan++
		}

		s.step(ctx)
	}

	if s.state == Running {
		s.state = IterationExhausted
		logger.Debug(ctx, "iteration limit reached after %d generations", len(s.trajectory))
	}

	return s.summary()
}

func (s *Simulation) record(alive int) {
	s.trajectory = append(s.trajectory, s.grid)
	s.aliveHistory = append(s.aliveHistory, alive)
}

// step advances the grid one generation and watches for terminal states.
// After a terminal state is detected the grid keeps advancing, so a
// periodic run cycles through its orbit during the confirmation window
// instead of freezing on the detection state.
func (s *Simulation) step(ctx context.Context) {
	next := Step(s.grid, s.gridSize)

	if s.state != Running {
		s.grid = next
		return
	}

	if next.Equal(s.grid) {
		s.state = Static
		logging.GetLogger().Debug(ctx, "grid became static after %d generations", s.lifespan)
		return
	}

	if _, seen := s.visited[next.Key()]; seen {
		s.state = Periodic
		logging.GetLogger().Debug(ctx, "grid entered a periodic cycle after %d generations", s.lifespan)
		s.grid = next
		return
	}

	s.visited[next.Key()] = struct{}{}
	s.grid = next
}

func (s *Simulation) summary() Summary {
	maxAlive := 0
	for _, count := range s.aliveHistory {
		if count > maxAlive {
			maxAlive = count
		}
	}

	window := s.maxStableGenerations
	if window < 1 {
		window = 1
	}

	return Summary{
		State:              s.state,
		Lifespan:           s.lifespan,
		MaxAliveCells:      maxAlive,
		AliveGrowth:        AliveGrowth(s.aliveHistory),
		Stableness:         math.Min(1, float64(s.stableCount)/float64(window)),
		IsStatic:           s.state == Static,
		IsPeriodic:         s.state == Periodic,
		InitialLivingCells: s.initial.AliveCount(),
		Trajectory:         s.trajectory,
		AliveHistory:       s.aliveHistory,
	}
}

// AliveGrowth scores the best sustained increase in live-cell count across
// a run. It scans with a running-minimum prefix index i and maximizes
// (history[j]-history[i])*(j-i), then normalizes by the winning distance
// and floors the result at zero. A long steady climb scores higher than a
// single large jump.
func AliveGrowth(history []int) float64 {
	if len(history) < 2 {
		return 0
	}

	maxValue := math.Inf(-1)
	distance := 0
	minIdx := 0
	for j := 1; j < len(history); j++ {
		diff := float64((history[j] - history[minIdx]) * (j - minIdx))
		if diff > maxValue {
			maxValue = diff
			distance = j - minIdx
		}
		if history[j] < history[minIdx] {
			minIdx = j
		}
	}

	if distance == 0 {
		return 0
	}
	return math.Max(maxValue, 0) / float64(distance)
}

// Package fitness converts raw simulation statistics into a single scalar
// score used to rank candidate configurations.
package fitness

import (
	"math"
)

// Weights holds the externally supplied coefficients for each fitness term.
// All weights are expected to be finite and non-negative; validation happens
// at configuration load time, not here.
type Weights struct {
	// Lifespan rewards configurations that keep producing new states.
	Lifespan float64 `json:"lifespan" yaml:"lifespan" validate:"gte=0"`

	// AliveCells rewards a high peak population.
	AliveCells float64 `json:"alive_cells" yaml:"alive_cells" validate:"gte=0"`

	// AliveGrowth rewards sustained growth in the live-cell count.
	AliveGrowth float64 `json:"alive_growth" yaml:"alive_growth" validate:"gte=0"`

	// Stableness rewards settling into static or periodic behavior.
	Stableness float64 `json:"stableness" yaml:"stableness" validate:"gte=0"`

	// InitialLivingCellsPenalty discourages configurations that start
	// with many living cells.
	InitialLivingCellsPenalty float64 `json:"initial_living_cells_penalty" yaml:"initial_living_cells_penalty" validate:"gte=0"`
}

// DefaultWeights returns the reference weighting used by the CLI.
func DefaultWeights() Weights {
	return Weights{
		Lifespan:                  200.0,
		AliveCells:                0.12,
		AliveGrowth:               0.1,
		Stableness:                0.01,
		InitialLivingCellsPenalty: 0.1,
	}
}

// Model scores simulation outcomes with a weighted linear combination of
// the positive terms, damped by a penalty on the initial population size.
type Model struct {
	weights Weights
}

// NewModel creates a fitness model with the given weights.
func NewModel(weights Weights) *Model {
	return &Model{weights: weights}
}

// Weights returns the configured weights.
func (m *Model) Weights() Weights {
	return m.weights
}

// Score computes the fitness of one simulated configuration. Pure and
// total: any finite inputs produce a finite score.
func (m *Model) Score(lifespan, maxAliveCells int, aliveGrowth, stableness float64, initialLivingCells int) float64 {
	lifespanScore := float64(lifespan) * m.weights.Lifespan
	aliveCellsScore := float64(maxAliveCells) * m.weights.AliveCells
	growthScore := aliveGrowth * m.weights.AliveGrowth
	stablenessScore := stableness * m.weights.Stableness

	penalty := 1.0 / math.Max(1, float64(initialLivingCells)*m.weights.InitialLivingCellsPenalty)

	return (lifespanScore + aliveCellsScore + growthScore + stablenessScore) * penalty
}

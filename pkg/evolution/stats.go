package evolution

import (
	"math"
)

// GenerationStatistics aggregates the population's metrics for one
// generation. Entries are append-only, indexed 0..generations-1.
type GenerationStatistics struct {
	Generation int `json:"generation"`

	AvgFitness float64 `json:"avg_fitness"`
	StdFitness float64 `json:"std_fitness"`

	AvgLifespan float64 `json:"avg_lifespan"`
	StdLifespan float64 `json:"std_lifespan"`

	AvgAliveGrowth float64 `json:"avg_alive_growth"`
	StdAliveGrowth float64 `json:"std_alive_growth"`

	AvgMaxAliveCells float64 `json:"avg_max_alive_cells"`
	StdMaxAliveCells float64 `json:"std_max_alive_cells"`

	AvgStableness float64 `json:"avg_stableness"`
	StdStableness float64 `json:"std_stableness"`

	AvgInitialLivingCells float64 `json:"avg_initial_living_cells"`
	StdInitialLivingCells float64 `json:"std_initial_living_cells"`
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - m
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

package evolution

// Strategy dispatch is stochastic: every call site draws one variant from
// a fixed weighted menu, independently of all previous draws. There is no
// persistent strategy state across generations.

type selectionStrategy int

const (
	selectionTournament selectionStrategy = iota
	selectionRoulette
	selectionRank
)

func (s selectionStrategy) String() string {
	return [...]string{"tournament", "roulette", "rank"}[s]
}

type crossoverStrategy int

const (
	crossoverCells crossoverStrategy = iota
	crossoverRows
	crossoverBlocks
)

func (s crossoverStrategy) String() string {
	return [...]string{"cells", "rows", "blocks"}[s]
}

type mutationStrategy int

const (
	mutationBasic mutationStrategy = iota
	mutationClusters
	mutationHarsh
)

func (s mutationStrategy) String() string {
	return [...]string{"basic", "clusters", "harsh"}[s]
}

// strategyMenuWeights is the reference weighting shared by all three
// strategy menus.
var strategyMenuWeights = []float64{0.3, 0.3, 0.4}

// pickWeighted draws an index with probability proportional to its weight.
func (l *Loop) pickWeighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return l.rng.Intn(len(weights))
	}

	spin := l.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if cumulative >= spin {
			return i
		}
	}
	return len(weights) - 1
}

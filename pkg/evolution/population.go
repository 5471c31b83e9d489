package evolution

import (
	"github.com/XiaoConstantine/evolife/pkg/life"
)

// Population is a set of unique configurations with stable insertion
// order. Duplicate configurations collapse silently to one member, so the
// effective size after deduplication may be smaller than requested; that
// is a documented property of the search, not an error.
type Population struct {
	members []life.Configuration
	index   map[string]struct{}
}

// NewPopulation creates an empty population.
func NewPopulation() *Population {
	return &Population{
		index: make(map[string]struct{}),
	}
}

// Add inserts a configuration, reporting whether it was new.
func (p *Population) Add(config life.Configuration) bool {
	key := config.Key()
	if _, exists := p.index[key]; exists {
		return false
	}
	p.index[key] = struct{}{}
	p.members = append(p.members, config)
	return true
}

// AddAll inserts every configuration, collapsing duplicates.
func (p *Population) AddAll(configs ...life.Configuration) {
	for _, config := range configs {
		p.Add(config)
	}
}

// Contains reports whether the configuration is a member.
func (p *Population) Contains(config life.Configuration) bool {
	_, exists := p.index[config.Key()]
	return exists
}

// Members returns the configurations in insertion order. The returned
// slice is a copy; mutating it does not affect the population.
func (p *Population) Members() []life.Configuration {
	out := make([]life.Configuration, len(p.members))
	copy(out, p.members)
	return out
}

// Len returns the effective population size.
func (p *Population) Len() int {
	return len(p.members)
}

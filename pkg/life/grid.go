package life

import (
	"github.com/XiaoConstantine/evolife/pkg/errors"
)

// Configuration is a row-major flattening of an N x N binary grid.
// Cell values are 0 (dead) or 1 (alive). Configurations are treated as
// immutable once constructed; identity is by cell value, so two
// configurations with identical cells are the same individual.
type Configuration []uint8

// Key returns a map key identifying the configuration by value.
func (c Configuration) Key() string {
	return string(c)
}

// Clone returns an independent copy of the configuration.
func (c Configuration) Clone() Configuration {
	dup := make(Configuration, len(c))
	copy(dup, c)
	return dup
}

// Equal reports cell-wise equality with other.
func (c Configuration) Equal(other Configuration) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// AliveCount returns the number of living cells.
func (c Configuration) AliveCount() int {
	count := 0
	for _, cell := range c {
		if cell != 0 {
			count++
		}
	}
	return count
}

// Validate checks that the configuration matches the expected grid size.
func (c Configuration) Validate(gridSize int) error {
	if len(c) != gridSize*gridSize {
		return errors.WithFields(
			errors.New(errors.InvalidConfiguration, "configuration length does not match grid size"),
			errors.Fields{
				"expected": gridSize * gridSize,
				"got":      len(c),
			})
	}
	return nil
}

// NeighborCounts computes, for every cell, the number of live cells among
// its 8 neighbors with toroidal wraparound. The result is indexed the same
// way as the grid.
func NeighborCounts(grid Configuration, size int) []int {
	counts := make([]int, len(grid))
	for row := 0; row < size; row++ {
		up := ((row-1)+size) % size
		down := (row + 1) % size
		for col := 0; col < size; col++ {
			left := ((col-1)+size) % size
			right := (col + 1) % size

			sum := int(grid[up*size+left]) + int(grid[up*size+col]) + int(grid[up*size+right]) +
				int(grid[row*size+left]) + int(grid[row*size+right]) +
				int(grid[down*size+left]) + int(grid[down*size+col]) + int(grid[down*size+right])

			counts[row*size+col] = sum
		}
	}
	return counts
}

// NextState applies the update rule to produce the next generation:
// a live cell survives with 2 or 3 live neighbors, a dead cell becomes
// alive with exactly 3, everything else is dead. Pure function.
func NextState(grid Configuration, counts []int) Configuration {
	next := make(Configuration, len(grid))
	for i := range grid {
		if grid[i] == 1 {
			if counts[i] == 2 || counts[i] == 3 {
				next[i] = 1
			}
		} else if counts[i] == 3 {
			next[i] = 1
		}
	}
	return next
}

// Step advances the grid by one generation.
func Step(grid Configuration, size int) Configuration {
	return NextState(grid, NeighborCounts(grid, size))
}

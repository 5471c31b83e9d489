// Package testutil provides canonical Game of Life fixtures shared by
// tests across packages.
package testutil

import (
	"github.com/XiaoConstantine/evolife/pkg/life"
)

// Empty returns an all-dead configuration for a size x size grid.
func Empty(size int) life.Configuration {
	return make(life.Configuration, size*size)
}

// WithCells returns a configuration with the given (row, col) cells alive.
func WithCells(size int, cells ...[2]int) life.Configuration {
	config := Empty(size)
	for _, cell := range cells {
		config[cell[0]*size+cell[1]] = 1
	}
	return config
}

// Block places a 2x2 still life with its top-left corner at (row, col).
func Block(size, row, col int) life.Configuration {
	return WithCells(size,
		[2]int{row, col}, [2]int{row, col + 1},
		[2]int{row + 1, col}, [2]int{row + 1, col + 1},
	)
}

// Blinker places a horizontal period-2 oscillator starting at (row, col).
func Blinker(size, row, col int) life.Configuration {
	return WithCells(size,
		[2]int{row, col}, [2]int{row, col + 1}, [2]int{row, col + 2},
	)
}

// Glider places a glider with its bounding box top-left at (row, col).
func Glider(size, row, col int) life.Configuration {
	return WithCells(size,
		[2]int{row, col + 1},
		[2]int{row + 1, col + 2},
		[2]int{row + 2, col}, [2]int{row + 2, col + 1}, [2]int{row + 2, col + 2},
	)
}

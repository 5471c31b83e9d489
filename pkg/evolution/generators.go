package evolution

import (
	"github.com/XiaoConstantine/evolife/pkg/life"
)

// Three generator families seed the search and refresh it when it starts
// to converge: clustered blobs, scattered single cells, and randomized
// rectangular block patterns.

// generateClustered drops a few random clusters, each built from random
// perturbations inside the 3x3 neighborhood of its center.
func (l *Loop) generateClustered() life.Configuration {
	n := l.config.GridSize
	config := make(life.Configuration, n*n)

	maxClusters := n / 3
	if maxClusters < 1 {
		maxClusters = 1
	}
	numClusters := 1 + l.rng.Intn(maxClusters)

	minClusterSize := 2
	if minClusterSize > n {
		minClusterSize = n
	}
	clusterSize := minClusterSize + l.rng.Intn(n-minClusterSize+1)

	for c := 0; c < numClusters; c++ {
		centerRow := l.rng.Intn(n)
		centerCol := l.rng.Intn(n)
		for k := 0; k < clusterSize; k++ {
			row := (centerRow + l.rng.Intn(3) - 1 + n) % n
			col := (centerCol + l.rng.Intn(3) - 1 + n) % n
			config[row*n+col] = 1
		}
	}
	return config
}

// generateScattered turns on a random number of cells at uniformly random
// positions.
func (l *Loop) generateScattered() life.Configuration {
	n := l.config.GridSize
	total := n * n
	config := make(life.Configuration, total)

	maxScattered := ((total / 3) / 4) * 2
	if maxScattered < 1 {
		maxScattered = 1
	}
	count := 1 + l.rng.Intn(maxScattered)

	for _, idx := range l.rng.Perm(total)[:count] {
		config[idx] = 1
	}
	return config
}

// generateBlock fills a random rectangular tile (with toroidal wrap) at
// half density. The tile always contains at least one live cell.
func (l *Loop) generateBlock() life.Configuration {
	n := l.config.GridSize
	config := make(life.Configuration, n*n)

	height := 2 + l.rng.Intn(n-1)
	width := 2 + l.rng.Intn(n-1)
	originRow := l.rng.Intn(n)
	originCol := l.rng.Intn(n)

	placed := 0
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			if l.rng.Float64() < 0.5 {
				row := (originRow + i) % n
				col := (originCol + j) % n
				config[row*n+col] = 1
				placed++
			}
		}
	}
	if placed == 0 {
		config[originRow*n+originCol] = 1
	}
	return config
}

// generateVariety produces a batch of fresh individuals split across the
// three generator families.
func (l *Loop) generateVariety(clustered, scattered, blocks int) []life.Configuration {
	batch := make([]life.Configuration, 0, clustered+scattered+blocks)
	for i := 0; i < clustered; i++ {
		batch = append(batch, l.generateClustered())
	}
	for i := 0; i < scattered; i++ {
		batch = append(batch, l.generateScattered())
	}
	for i := 0; i < blocks; i++ {
		batch = append(batch, l.generateBlock())
	}
	return batch
}

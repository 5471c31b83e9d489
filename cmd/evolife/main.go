// Command evolife searches for Game of Life starting configurations with
// interesting long-term behavior and prints the ranked winners.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/XiaoConstantine/evolife/pkg/config"
	"github.com/XiaoConstantine/evolife/pkg/evolution"
	"github.com/XiaoConstantine/evolife/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML run configuration (defaults apply when omitted)")
	seed := flag.Int64("seed", 0, "override the random seed (0 keeps the configured value)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "evolife: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: logging.ParseSeverity(cfg.LogLevel),
		Outputs:  []logging.Output{logging.NewConsoleOutput(true)},
	}))

	loop, err := evolution.NewLoop(cfg.EvolutionConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "evolife: %v\n", err)
		os.Exit(1)
	}

	result, err := loop.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "evolife: %v\n", err)
		os.Exit(1)
	}

	printReport(result)
}

func printReport(result *evolution.RunResult) {
	fmt.Printf("run %s\n\n", result.RunID)

	fmt.Println("top configurations:")
	fmt.Printf("%-4s %-12s %-9s %-10s %-12s %-11s %s\n",
		"#", "fitness", "lifespan", "max_alive", "alive_growth", "stableness", "initial_cells")
	for i, r := range result.FinalResults() {
		fmt.Printf("%-4d %-12.4f %-9d %-10d %-12.4f %-11.4f %d\n",
			i+1, r.FitnessScore, r.Lifespan, r.MaxAliveCells, r.AliveGrowth, r.Stableness, r.InitialLivingCells)
	}

	fmt.Println("\ngeneration statistics:")
	fmt.Printf("%-5s %-14s %-14s %-14s %s\n", "gen", "avg_fitness", "avg_lifespan", "avg_max_alive", "mutation_rate")
	for i, stats := range result.GenerationStatistics {
		rate := 0.0
		if i < len(result.MutationRateHistory) {
			rate = result.MutationRateHistory[i]
		}
		fmt.Printf("%-5d %-14.4f %-14.2f %-14.2f %.3f\n",
			stats.Generation, stats.AvgFitness, stats.AvgLifespan, stats.AvgMaxAliveCells, rate)
	}

	fmt.Printf("\ncache: %d distinct configurations simulated, %d hits, %d misses\n",
		result.CacheStats.Evaluations, result.CacheStats.Hits, result.CacheStats.Misses)
}

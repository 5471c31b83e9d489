// Package evolife searches for Conway's Game of Life starting
// configurations that exhibit interesting long-term behavior: long
// lifespan, high peak population, sustained growth, and cyclical
// stability.
//
// The module couples a deterministic simulation engine with a
// population-based genetic optimizer:
//
//   - life: a toroidal grid engine plus a simulation run that classifies
//     each configuration as static, periodic, or still evolving within a
//     bounded step budget.
//
//   - fitness: a weighted scoring model that turns raw trajectory
//     statistics into a single scalar.
//
//   - cache: a memoizing evaluator guaranteeing each distinct
//     configuration is simulated at most once per run.
//
//   - evolution: the generation loop, covering stochastic selection,
//     crossover and mutation strategies, adaptive mutation-rate control,
//     stagnation detection, and periodic diversity injection.
//
//   - config: YAML-backed run parameters with validation.
//
// A minimal run:
//
//	loop, err := evolution.NewLoop(evolution.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := loop.Run(context.Background())
//	if err != nil {
//		log.Fatal(err)
//	}
//	top, _ := result.TopResult()
//	fmt.Println(top.FitnessScore)
package evolife

// Gait parameter search - Nelder-Mead over trigger distance and lead.
//
// Each candidate drives a single creature headless along a
// seed-deterministic wander path and is scored on trigger overshoot,
// stretch clamps and step starvation. Prints the best parameters as a
// YAML fragment for defaults.yaml or a -config file.
//
// Usage: go run ./cmd/gaittune -ticks 7200 -seeds 3 -max-evals 80
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/squirm/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int64("ticks", 7200, "Simulation ticks per candidate run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 80, "Maximum number of cost evaluations")
	flag.Parse()

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg)

	// Generate seeds for evaluation
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewEvaluator(params, *ticks, evalSeeds, *configPath)

	// Track evaluations and the best candidate seen
	evalCount := 0
	var bestCost float64 = 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Denormalize to get raw parameter values; ApplyToConfig
			// clamps, so track the clamped vector
			raw := params.Denormalize(x)
			cost := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if cost < bestCost {
				bestCost = cost
				bestParams = clamped
			}

			fmt.Printf("eval %d/%d: cost=%.4f (best=%.4f) trigger=%.1f lead=%.1f | elapsed: %s\n",
				evalCount, *maxEvals, cost, bestCost, clamped[0], clamped[1],
				time.Since(startTime).Round(time.Second))
			return cost
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}
	initX := params.Normalize(params.DefaultVector())

	fmt.Printf("Starting Nelder-Mead search with %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *ticks)

	result, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Best params may come from any evaluation, not just the final one
	if bestParams == nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evalCount, time.Since(startTime).Round(time.Second))
	fmt.Printf("Best cost: %.4f\n", bestCost)

	fmt.Println("\nYAML fragment:")
	fmt.Println("gait:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.1f\n", spec.Name, bestParams[i])
	}
}

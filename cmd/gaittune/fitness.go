package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/squirm/config"
	"github.com/pthm-cable/squirm/game"
	"github.com/pthm-cable/squirm/telemetry"
)

// Cost weights. Overshoot is the base term in world units; the penalties
// convert clamp pressure and starved windows into the same scale.
const (
	clampPenalty      = 2.0
	starvationPenalty = 5.0

	// Windows to skip while the creature settles into its wander path
	warmupWindows = 1

	costWindowSec = 5.0
)

// Evaluator runs headless simulations and scores gait candidates.
type Evaluator struct {
	params     *ParamVector
	ticks      int64
	seeds      []int64
	configPath string
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(params *ParamVector, ticks int64, seeds []int64, configPath string) *Evaluator {
	return &Evaluator{
		params:     params,
		ticks:      ticks,
		seeds:      seeds,
		configPath: configPath,
	}
}

// Evaluate computes the mean cost across seeds (lower = better).
func (e *Evaluator) Evaluate(x []float64) float64 {
	costs := make([]float64, len(e.seeds))
	var wg sync.WaitGroup

	for i, seed := range e.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			costs[idx] = e.runCandidate(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, c := range costs {
		total += c
	}
	return total / float64(len(e.seeds))
}

// runCandidate drives a single creature along its seed-deterministic
// wander path with the candidate gait and scores the stats windows.
func (e *Evaluator) runCandidate(x []float64, seed int64) float64 {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return math.Inf(1)
	}

	// One creature, no body jitter, so the candidate values are what
	// actually runs. The variant pick stays seed-deterministic, which
	// keeps candidates comparable across evaluations.
	cfg.Population.Count = 1
	cfg.Creature.Jitter = 0
	e.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: costWindowSec,
		StepsPerUpdate: 600,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})

	for g.Tick() < e.ticks {
		g.UpdateHeadless()
	}
	g.Unload()

	return scoreWindows(windows)
}

// scoreWindows folds one run's stats into a scalar. Mean trigger
// overshoot is the base term; stretch clamps and starved windows add
// penalties on top.
func scoreWindows(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows {
		return math.Inf(1)
	}
	valid := windows[warmupWindows:]

	var overshootSum float64
	var overshootN int
	var clampsPerSec float64
	starved := 0

	for _, w := range valid {
		if w.StepsStarted > 0 {
			overshootSum += w.OvershootMean
			overshootN++
		} else {
			starved++
		}
		clampsPerSec += w.ClampsPerSec
	}

	cost := starvationPenalty * float64(starved)
	cost += clampPenalty * clampsPerSec / float64(len(valid))
	if overshootN > 0 {
		cost += overshootSum / float64(overshootN)
	}
	return cost
}

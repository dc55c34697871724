package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated animation statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Creatures   int `csv:"creatures"`
	SteppingNow int `csv:"stepping_now"`

	// Gait events during window
	StepsStarted   int     `csv:"steps_started"`
	StepsCompleted int     `csv:"steps_completed"`
	StepsPerSec    float64 `csv:"steps_per_sec"`
	StretchClamps  int     `csv:"stretch_clamps"`
	ClampsPerSec   float64 `csv:"clamps_per_sec"`

	// Trigger overshoot distribution (foot-to-ideal distance at the
	// moment a step fires)
	OvershootMean float64 `csv:"overshoot_mean"`
	OvershootP50  float64 `csv:"overshoot_p50"`
	OvershootP95  float64 `csv:"overshoot_p95"`

	// Planned step length distribution
	StepLenMean float64 `csv:"step_len_mean"`
	StepLenStd  float64 `csv:"step_len_std"`
	StepLenP50  float64 `csv:"step_len_p50"`
	StepLenP95  float64 `csv:"step_len_p95"`

	// Contour extraction load
	SegmentsMean float64 `csv:"segments_mean"`
	SegmentsMax  int     `csv:"segments_max"`
	CellsMean    float64 `csv:"cells_mean"`
}

// SampleStats summarizes one sample set: mean plus the 50th and 95th
// empirical quantiles. Returns zeros for an empty set.
func SampleStats(values []float64) (mean, p50, p95 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return mean, p50, p95
}

// SampleStdDev returns the sample standard deviation, or 0 below two
// samples.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("creatures", s.Creatures),
		slog.Int("stepping_now", s.SteppingNow),
		slog.Int("steps_started", s.StepsStarted),
		slog.Int("steps_completed", s.StepsCompleted),
		slog.Float64("steps_per_sec", s.StepsPerSec),
		slog.Int("stretch_clamps", s.StretchClamps),
		slog.Float64("clamps_per_sec", s.ClampsPerSec),
		slog.Float64("overshoot_mean", s.OvershootMean),
		slog.Float64("overshoot_p50", s.OvershootP50),
		slog.Float64("overshoot_p95", s.OvershootP95),
		slog.Float64("step_len_mean", s.StepLenMean),
		slog.Float64("step_len_std", s.StepLenStd),
		slog.Float64("step_len_p50", s.StepLenP50),
		slog.Float64("step_len_p95", s.StepLenP95),
		slog.Float64("segments_mean", s.SegmentsMean),
		slog.Int("segments_max", s.SegmentsMax),
		slog.Float64("cells_mean", s.CellsMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"creatures", s.Creatures,
		"stepping_now", s.SteppingNow,
		"steps_started", s.StepsStarted,
		"steps_completed", s.StepsCompleted,
		"steps_per_sec", s.StepsPerSec,
		"stretch_clamps", s.StretchClamps,
		"clamps_per_sec", s.ClampsPerSec,
		"overshoot_mean", s.OvershootMean,
		"overshoot_p95", s.OvershootP95,
		"step_len_mean", s.StepLenMean,
		"step_len_p95", s.StepLenP95,
		"segments_mean", s.SegmentsMean,
		"segments_max", s.SegmentsMax,
		"cells_mean", s.CellsMean,
	)
}

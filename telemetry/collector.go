package telemetry

import "math"

// Collector accumulates animation events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float32

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	stepsStarted   int
	stepsCompleted int
	stretchClamps  int

	// Samples for current window
	overshoots  []float64
	stepLens    []float64
	segments    []float64
	cells       []float64
	segmentsMax int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// Round so a 10s window at 60 ticks/s lands on exactly 600 ticks
	// despite the float32 dt.
	ticksPerWindow := int64(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordStepStarted records a step trigger with the foot-to-ideal
// distance at the moment of trigger and the planned step length.
func (c *Collector) RecordStepStarted(overshoot, stepLength float32) {
	c.stepsStarted++
	c.overshoots = append(c.overshoots, float64(overshoot))
	c.stepLens = append(c.stepLens, float64(stepLength))
}

// RecordStepsCompleted records legs that planted this tick.
func (c *Collector) RecordStepsCompleted(n int) {
	c.stepsCompleted += n
}

// RecordStretchClamps records IK solves whose target was beyond reach.
func (c *Collector) RecordStretchClamps(n int) {
	c.stretchClamps += n
}

// RecordExtraction records one creature's contour extraction load.
func (c *Collector) RecordExtraction(segments, gridCells int) {
	c.segments = append(c.segments, float64(segments))
	c.cells = append(c.cells, float64(gridCells))
	if segments > c.segmentsMax {
		c.segmentsMax = segments
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the current tick, the creature count, and how many
// legs are mid-swing right now.
func (c *Collector) Flush(currentTick int64, creatures, steppingNow int) WindowStats {
	elapsedSec := float64(currentTick-c.windowStartTick) * float64(c.dt)

	var stepsPerSec, clampsPerSec float64
	if elapsedSec > 0 {
		stepsPerSec = float64(c.stepsStarted) / elapsedSec
		clampsPerSec = float64(c.stretchClamps) / elapsedSec
	}

	overshootMean, overshootP50, overshootP95 := SampleStats(c.overshoots)
	stepLenMean, stepLenP50, stepLenP95 := SampleStats(c.stepLens)
	segmentsMean, _, _ := SampleStats(c.segments)
	cellsMean, _, _ := SampleStats(c.cells)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Creatures:   creatures,
		SteppingNow: steppingNow,

		StepsStarted:   c.stepsStarted,
		StepsCompleted: c.stepsCompleted,
		StepsPerSec:    stepsPerSec,
		StretchClamps:  c.stretchClamps,
		ClampsPerSec:   clampsPerSec,

		OvershootMean: overshootMean,
		OvershootP50:  overshootP50,
		OvershootP95:  overshootP95,

		StepLenMean: stepLenMean,
		StepLenStd:  SampleStdDev(c.stepLens),
		StepLenP50:  stepLenP50,
		StepLenP95:  stepLenP95,

		SegmentsMean: segmentsMean,
		SegmentsMax:  c.segmentsMax,
		CellsMean:    cellsMean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.stepsStarted = 0
	c.stepsCompleted = 0
	c.stretchClamps = 0
	c.overshoots = c.overshoots[:0]
	c.stepLens = c.stepLens[:0]
	c.segments = c.segments[:0]
	c.cells = c.cells[:0]
	c.segmentsMax = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}

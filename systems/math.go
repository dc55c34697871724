package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// easeCosine maps linear swing progress to the horizontal fraction:
// (1 - cos(pi*t)) / 2. Slow at lift-off and touch-down, fastest mid-swing.
func easeCosine(t float32) float32 {
	return (1 - float32(math.Cos(float64(t)*math.Pi))) / 2
}

// arcLift returns the vertical lift at swing progress t: sin(pi*t)*height,
// zero at both ends and peaking at t=0.5.
func arcLift(t, height float32) float32 {
	return float32(math.Sin(float64(t)*math.Pi)) * height
}

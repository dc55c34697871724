package systems

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/squirm/geom"
)

// noiseRowSpacing separates the noise rows sampled by different creatures
// so their wander paths stay uncorrelated.
const noiseRowSpacing = 7.31

// Locomotion drives creature cores toward smoothly drifting wander
// targets. It is the boundary input for the animation passes: everything
// downstream only sees the core position and its per-tick delta.
type Locomotion struct {
	noise    opensimplex.Noise
	width    float32
	height   float32
	margin   float32
	area     float32
	timeStep float64
}

// NewLocomotion creates a wander driver over a world of the given size.
// Targets stay margin away from the edges; area in (0, 1] shrinks the
// reachable region around the world center; timeStep sets how fast
// targets drift per tick.
func NewLocomotion(seed int64, width, height, margin, area float32, timeStep float64) *Locomotion {
	return &Locomotion{
		noise:    opensimplex.NewNormalized(seed),
		width:    width,
		height:   height,
		margin:   margin,
		area:     area,
		timeStep: timeStep,
	}
}

// Target returns the wander goal for one creature at the given tick.
// channel picks the creature's own noise rows, so creatures sharing the
// driver still roam independently.
func (l *Locomotion) Target(channel uint32, tick int64) geom.Vec2 {
	t := float64(tick) * l.timeStep
	row := float64(channel) * noiseRowSpacing
	nx := clamp01(float32(l.noise.Eval2(t, row)))
	ny := clamp01(float32(l.noise.Eval2(t, row+noiseRowSpacing/2)))
	spanX := (l.width - 2*l.margin) * l.area
	spanY := (l.height - 2*l.margin) * l.area
	return geom.Vec2{
		X: l.width/2 + (nx-0.5)*spanX,
		Y: l.height/2 + (ny-0.5)*spanY,
	}
}

// Advance moves pos toward target at up to maxSpeed units per tick,
// slowing inside arriveRadius so the core settles instead of orbiting.
// Returns the new position and the applied delta; the delta is what the
// gait consumes as the core's velocity.
func (l *Locomotion) Advance(pos, target geom.Vec2, maxSpeed, arriveRadius float32) (geom.Vec2, geom.Vec2) {
	toTarget := target.Sub(pos)
	dist := toTarget.Length()
	if dist < 1e-3 {
		return pos, geom.Vec2{}
	}
	speed := maxSpeed
	if dist < arriveRadius && arriveRadius > 0 {
		speed = maxSpeed * dist / arriveRadius
	}
	if speed > dist {
		speed = dist
	}
	delta := toTarget.Scale(speed / dist)
	return pos.Add(delta), delta
}

package components

import "github.com/pthm-cable/squirm/geom"

// Position is the creature core position in world space.
type Position struct {
	X, Y float32
}

// Vec returns the position as a vector.
func (p Position) Vec() geom.Vec2 {
	return geom.Vec2{X: p.X, Y: p.Y}
}

// Set overwrites the position from a vector.
func (p *Position) Set(v geom.Vec2) {
	p.X, p.Y = v.X, v.Y
}

// Velocity is the per-tick core delta (position this tick minus position
// last tick). The gait scheduler reads it as the lead direction.
type Velocity struct {
	X, Y float32
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() geom.Vec2 {
	return geom.Vec2{X: v.X, Y: v.Y}
}

// Set overwrites the velocity from a vector.
func (v *Velocity) Set(d geom.Vec2) {
	v.X, v.Y = d.X, d.Y
}

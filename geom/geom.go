// Package geom provides 2D vector math shared by the skeleton, gait and
// skin code. All values are world-space float32 with float64 intermediates
// for the transcendental calls.
package geom

import "math"

// Vec2 is a 2D point or direction in world space.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the euclidean length of v.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// LengthSq returns the squared length of v, avoiding the sqrt.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceTo returns the euclidean distance from v to o.
func (v Vec2) DistanceTo(o Vec2) float32 {
	return v.Sub(o).Length()
}

// DistanceSqTo returns the squared distance from v to o.
func (v Vec2) DistanceSqTo(o Vec2) float32 {
	return v.Sub(o).LengthSq()
}

// Normalized returns v scaled to unit length. The zero vector returns zero
// rather than NaN.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp linearly interpolates from a to b by t. t is not clamped.
func Lerp(a, b Vec2, t float32) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

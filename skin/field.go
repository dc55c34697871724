// Package skin produces the creature silhouette: a metaball scalar field
// anchored to the skeleton's joints, sampled over an ephemeral grid and
// contoured with 16-case marching squares into world-space line segments.
package skin

import "github.com/pthm-cable/squirm/geom"

// Influence is one weighted falloff circle anchored to a joint. Influences
// are rebuilt from the skeleton every draw and discarded after sampling.
type Influence struct {
	Pos    geom.Vec2
	Radius float32
	Weight float32
}

// contribution evaluates the compact-support cubic falloff at p. The value
// is weight at the center and exactly zero at and beyond the radius, with a
// C1-continuous boundary so overlapping circles composite without seams.
func (in *Influence) contribution(p geom.Vec2) float32 {
	distSq := p.DistanceSqTo(in.Pos)
	rSq := in.Radius * in.Radius
	if distSq >= rSq {
		return 0
	}
	falloff := 1 - distSq/rSq
	return in.Weight * falloff * falloff * falloff
}

// FieldValue sums the falloff contributions of all influences at p.
func FieldValue(p geom.Vec2, influences []Influence) float32 {
	var sum float32
	for i := range influences {
		sum += influences[i].contribution(p)
	}
	return sum
}

package systems

import (
	"math"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
)

// reachEpsilon keeps the solve away from fully collapsed and fully
// stretched configurations, where the joint angle becomes unstable.
const reachEpsilon = 0.1

// SolveKnee places the middle joint of a two-bone chain given the hip
// origin and the foot target, via the law of cosines. Targets outside the
// chain's reach are clamped, so the limb stretches toward an unreachable
// target instead of failing. bendRight picks which of the two mirror
// solutions to use. Pure function, safe to call from any goroutine.
func SolveKnee(origin, target geom.Vec2, l1, l2 float32, bendRight bool) geom.Vec2 {
	knee, _ := solveKnee(origin, target, l1, l2, bendRight)
	return knee
}

func solveKnee(origin, target geom.Vec2, l1, l2 float32, bendRight bool) (geom.Vec2, bool) {
	delta := target.Sub(origin)
	rawDist := delta.Length()
	d := clampFloat(rawDist, reachEpsilon, l1+l2-reachEpsilon)

	angle := float32(math.Atan2(float64(delta.Y), float64(delta.X)))

	// Law of cosines for the hip interior angle, clamped against
	// floating-point overshoot before acos.
	cosAlpha := (l1*l1 + d*d - l2*l2) / (2 * l1 * d)
	cosAlpha = clampFloat(cosAlpha, -1, 1)
	alpha := float32(math.Acos(float64(cosAlpha)))

	kneeAngle := angle - alpha
	if bendRight {
		kneeAngle = angle + alpha
	}

	knee := geom.Vec2{
		X: origin.X + l1*float32(math.Cos(float64(kneeAngle))),
		Y: origin.Y + l1*float32(math.Sin(float64(kneeAngle))),
	}
	return knee, d != rawDist
}

// SolveSkeleton recomputes every knee of one skeleton in place from the
// current core position and foot targets. Returns how many legs had their
// reach clamped this pass.
func SolveSkeleton(core geom.Vec2, skel *components.Skeleton) int {
	clamped := 0
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		hip := core.Add(leg.HipOffset)
		knee, wasClamped := solveKnee(hip, leg.Foot, leg.L1, leg.L2, leg.BendRight)
		leg.Knee = knee
		if wasClamped {
			clamped++
		}
	}
	return clamped
}

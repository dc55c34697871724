package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
)

const ikTol = 1e-3

func approxEq(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func TestSolveKneeSatisfiesBoneLengths(t *testing.T) {
	tests := []struct {
		name      string
		origin    geom.Vec2
		target    geom.Vec2
		l1, l2    float32
		bendRight bool
	}{
		{"diagonal reach", geom.Vec2{}, geom.Vec2{X: 40, Y: 30}, 30, 30, true},
		{"uneven bones", geom.Vec2{X: -12, Y: 44}, geom.Vec2{X: 31, Y: 2}, 40, 25, false},
		{"vertical", geom.Vec2{X: 100, Y: 100}, geom.Vec2{X: 100, Y: 160}, 35, 35, true},
		{"short hop", geom.Vec2{X: 5, Y: 5}, geom.Vec2{X: 25, Y: 5}, 18, 14, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			knee := SolveKnee(tt.origin, tt.target, tt.l1, tt.l2, tt.bendRight)
			if got := tt.origin.DistanceTo(knee); !approxEq(got, tt.l1, ikTol) {
				t.Errorf("origin-knee = %v, want %v", got, tt.l1)
			}
			if got := knee.DistanceTo(tt.target); !approxEq(got, tt.l2, ikTol) {
				t.Errorf("knee-target = %v, want %v", got, tt.l2)
			}
		})
	}
}

func TestSolveKneeKnownPose(t *testing.T) {
	// Horizontal chain: origin at rest, foot 70 away, bones 58 and 35.
	// cosAlpha = (58^2 + 70^2 - 35^2) / (2*58*70) = 7039/8120.
	origin := geom.Vec2{}
	target := geom.Vec2{X: 70}
	knee := SolveKnee(origin, target, 58, 35, true)

	if !approxEq(knee.X, 50.2786, 1e-2) || !approxEq(knee.Y, 28.9148, 1e-2) {
		t.Errorf("knee = %+v, want approx (50.2786, 28.9148)", knee)
	}
	if got := origin.DistanceTo(knee); !approxEq(got, 58, ikTol) {
		t.Errorf("origin-knee = %v, want 58", got)
	}
	if got := knee.DistanceTo(target); !approxEq(got, 35, ikTol) {
		t.Errorf("knee-target = %v, want 35", got)
	}
}

func TestSolveKneeBendSide(t *testing.T) {
	origin := geom.Vec2{X: 10, Y: 20}
	target := geom.Vec2{X: 60, Y: 20}

	right := SolveKnee(origin, target, 30, 30, true)
	left := SolveKnee(origin, target, 30, 30, false)

	if right.Y <= origin.Y {
		t.Errorf("bend right knee.Y = %v, want > %v", right.Y, origin.Y)
	}
	if left.Y >= origin.Y {
		t.Errorf("bend left knee.Y = %v, want < %v", left.Y, origin.Y)
	}
	// Mirror solutions about the origin-target axis.
	if !approxEq(right.X, left.X, ikTol) || !approxEq(right.Y-origin.Y, origin.Y-left.Y, ikTol) {
		t.Errorf("solutions not mirrored: right %+v left %+v", right, left)
	}
}

func TestSolveKneeClampsUnreachable(t *testing.T) {
	origin := geom.Vec2{}
	target := geom.Vec2{X: 200}
	l1, l2 := float32(58), float32(35)

	knee := SolveKnee(origin, target, l1, l2, true)

	if got := origin.DistanceTo(knee); !approxEq(got, l1, ikTol) {
		t.Errorf("origin-knee = %v, want %v", got, l1)
	}
	// The effective target sits at the clamped reach along the same ray.
	effective := geom.Vec2{X: l1 + l2 - reachEpsilon}
	if got := knee.DistanceTo(effective); !approxEq(got, l2, ikTol) {
		t.Errorf("knee-effective = %v, want %v", got, l2)
	}
	// Near-straight limb: the knee stays close to the origin-target ray.
	if knee.Y < 0 || knee.Y > 2.5 {
		t.Errorf("knee.Y = %v, want in [0, 2.5]", knee.Y)
	}
}

func TestSolveKneeCollapsedTarget(t *testing.T) {
	origin := geom.Vec2{X: 7, Y: -3}
	knee := SolveKnee(origin, origin, 58, 35, true)

	if math.IsNaN(float64(knee.X)) || math.IsNaN(float64(knee.Y)) {
		t.Fatalf("knee = %+v, want finite", knee)
	}
	if got := origin.DistanceTo(knee); !approxEq(got, 58, ikTol) {
		t.Errorf("origin-knee = %v, want 58", got)
	}
}

func TestSolveSkeleton(t *testing.T) {
	skel := &components.Skeleton{
		Legs: []components.Leg{
			{ID: "FL", HipOffset: geom.Vec2{X: -20, Y: -12}, L1: 30, L2: 30, BendRight: false},
			{ID: "FR", HipOffset: geom.Vec2{X: 20, Y: -12}, L1: 30, L2: 30, BendRight: true},
		},
		StepOrder: []int{0, 1},
	}
	core := geom.Vec2{X: 100, Y: 50}
	skel.Legs[0].Foot = geom.Vec2{X: 105, Y: 68}
	skel.Legs[1].Foot = geom.Vec2{X: 220, Y: 38}

	clamped := SolveSkeleton(core, skel)

	if clamped != 1 {
		t.Errorf("clamped = %d, want 1", clamped)
	}
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		hip := core.Add(leg.HipOffset)
		if got := hip.DistanceTo(leg.Knee); !approxEq(got, leg.L1, ikTol) {
			t.Errorf("leg %s hip-knee = %v, want %v", leg.ID, got, leg.L1)
		}
	}
}

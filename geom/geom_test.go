package geom

import (
	"math"
	"testing"
)

const eps = 1e-5

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestAddSubScale(t *testing.T) {
	a := Vec2{3, -2}
	b := Vec2{-1, 5}

	if got := a.Add(b); !approx(got.X, 2) || !approx(got.Y, 3) {
		t.Errorf("Add = %+v, want {2 3}", got)
	}
	if got := a.Sub(b); !approx(got.X, 4) || !approx(got.Y, -7) {
		t.Errorf("Sub = %+v, want {4 -7}", got)
	}
	if got := a.Scale(2); !approx(got.X, 6) || !approx(got.Y, -4) {
		t.Errorf("Scale = %+v, want {6 -4}", got)
	}
}

func TestLengthAndDistance(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); !approx(got, 5) {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := v.LengthSq(); !approx(got, 25) {
		t.Errorf("LengthSq = %v, want 25", got)
	}

	a := Vec2{1, 1}
	b := Vec2{4, 5}
	if got := a.DistanceTo(b); !approx(got, 5) {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
	if got, want := a.DistanceTo(b), b.DistanceTo(a); !approx(got, want) {
		t.Errorf("DistanceTo not symmetric: %v vs %v", got, want)
	}
	if got := a.DistanceSqTo(b); !approx(got, 25) {
		t.Errorf("DistanceSqTo = %v, want 25", got)
	}
}

func TestDot(t *testing.T) {
	a := Vec2{2, 3}
	b := Vec2{-1, 4}
	if got := a.Dot(b); !approx(got, 10) {
		t.Errorf("Dot = %v, want 10", got)
	}
	perp := Vec2{-3, 2}
	if got := a.Dot(perp); !approx(got, 0) {
		t.Errorf("Dot of perpendicular vectors = %v, want 0", got)
	}
}

func TestNormalized(t *testing.T) {
	v := Vec2{0, -7}
	n := v.Normalized()
	if !approx(n.X, 0) || !approx(n.Y, -1) {
		t.Errorf("Normalized = %+v, want {0 -1}", n)
	}
	if got := n.Length(); !approx(got, 1) {
		t.Errorf("Normalized length = %v, want 1", got)
	}

	zero := Vec2{}.Normalized()
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("Normalized zero vector = %+v, want zero", zero)
	}
}

func TestLerp(t *testing.T) {
	a := Vec2{0, 10}
	b := Vec2{10, -10}

	tests := []struct {
		name string
		t    float32
		want Vec2
	}{
		{"start", 0, Vec2{0, 10}},
		{"end", 1, Vec2{10, -10}},
		{"mid", 0.5, Vec2{5, 0}},
		{"quarter", 0.25, Vec2{2.5, 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Lerp(a, b, tc.t)
			if !approx(got.X, tc.want.X) || !approx(got.Y, tc.want.Y) {
				t.Errorf("Lerp(%v) = %+v, want %+v", tc.t, got, tc.want)
			}
		})
	}
}

package components

import (
	"testing"

	"github.com/pthm-cable/squirm/geom"
)

func fourLegs() *Skeleton {
	return &Skeleton{
		Legs: []Leg{
			{ID: "FL", HipOffset: geom.Vec2{X: -20, Y: -12}},
			{ID: "FR", HipOffset: geom.Vec2{X: 20, Y: -12}},
			{ID: "BL", HipOffset: geom.Vec2{X: -20, Y: 12}},
			{ID: "BR", HipOffset: geom.Vec2{X: 20, Y: 12}},
		},
		StepOrder: []int{0, 3, 1, 2},
	}
}

func TestLegByID(t *testing.T) {
	s := fourLegs()

	leg := s.LegByID("BL")
	if leg == nil {
		t.Fatal("LegByID(BL) = nil")
	}
	if leg.HipOffset.X != -20 || leg.HipOffset.Y != 12 {
		t.Errorf("BL hip offset = %+v", leg.HipOffset)
	}

	if got := s.LegByID("XX"); got != nil {
		t.Errorf("LegByID(XX) = %+v, want nil", got)
	}

	// The returned pointer aliases the skeleton's leg, not a copy.
	leg.Foot = geom.Vec2{X: 5, Y: 5}
	if s.Legs[2].Foot.X != 5 {
		t.Error("LegByID returned a copy")
	}
}

func TestHip(t *testing.T) {
	s := fourLegs()
	core := geom.Vec2{X: 100, Y: 50}

	hip := s.Hip(core, 1)
	if hip.X != 120 || hip.Y != 38 {
		t.Errorf("Hip = %+v, want {120 38}", hip)
	}
}

func TestSteppingQueries(t *testing.T) {
	s := fourLegs()

	if s.AnyStepping() {
		t.Error("fresh skeleton reports a stepping leg")
	}
	if got := s.SteppingCount(); got != 0 {
		t.Errorf("SteppingCount = %d, want 0", got)
	}

	s.Legs[3].Step.Phase = StepSwinging
	if !s.AnyStepping() {
		t.Error("AnyStepping = false with leg 3 swinging")
	}
	if got := s.SteppingCount(); got != 1 {
		t.Errorf("SteppingCount = %d, want 1", got)
	}
	if !s.Legs[3].Stepping() {
		t.Error("Stepping() = false for swinging leg")
	}
}

func TestCursorCycle(t *testing.T) {
	s := fourLegs()

	want := []int{0, 3, 1, 2, 0, 3, 1, 2}
	for i, w := range want {
		if got := s.NextLegIndex(); got != w {
			t.Fatalf("step %d: NextLegIndex = %d, want %d", i, got, w)
		}
		s.AdvanceCursor()
	}
}

func TestLegOrderPreserved(t *testing.T) {
	s := fourLegs()
	ids := []string{"FL", "FR", "BL", "BR"}
	for i, id := range ids {
		if s.Legs[i].ID != id {
			t.Errorf("leg %d = %s, want %s", i, s.Legs[i].ID, id)
		}
	}
}

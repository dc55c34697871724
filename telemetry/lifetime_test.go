package telemetry

import (
	"math"
	"testing"
)

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, 100)

	lt.RecordStep(7)
	lt.RecordStep(7)
	lt.RecordStep(7)
	lt.RecordStepsCompleted(7, 2)
	lt.RecordTravel(7, 1.5)
	lt.RecordTravel(7, 2.5)
	lt.RecordStretch(7, 0.8)
	lt.RecordStretch(7, 1.2)
	lt.RecordStretch(7, 0.9)
	lt.UpdateAliveTime(7, 400, 1.0/60)

	s := lt.Get(7)
	if s == nil {
		t.Fatal("stats missing after register")
	}
	if s.StepsStarted != 3 || s.StepsCompleted != 2 {
		t.Errorf("steps = %d/%d, want 3/2", s.StepsStarted, s.StepsCompleted)
	}
	if s.DistanceTraveled != 4 {
		t.Errorf("distance = %v, want 4", s.DistanceTraveled)
	}
	if s.MaxStretchRatio != 1.2 {
		t.Errorf("max stretch = %v, want 1.2", s.MaxStretchRatio)
	}
	if s.StretchClamps != 1 {
		t.Errorf("clamps = %d, want 1 (only ratios above 1 count)", s.StretchClamps)
	}
	if math.Abs(float64(s.AliveSec)-5) > 0.001 {
		t.Errorf("alive = %v, want 5s", s.AliveSec)
	}

	if lt.Count() != 1 {
		t.Errorf("count = %d, want 1", lt.Count())
	}
	removed := lt.Remove(7)
	if removed == nil || removed.StepsStarted != 3 {
		t.Errorf("removed = %+v", removed)
	}
	if lt.Get(7) != nil || lt.Count() != 0 {
		t.Error("stats survived removal")
	}
}

func TestLifetimeTrackerUnknownIDIsNoop(t *testing.T) {
	lt := NewLifetimeTracker()

	// No registration: records must not panic or create entries.
	lt.RecordStep(99)
	lt.RecordTravel(99, 10)
	lt.RecordStretch(99, 2)
	lt.UpdateAliveTime(99, 100, 1.0/60)

	if lt.Count() != 0 {
		t.Errorf("count = %d, want 0", lt.Count())
	}
}

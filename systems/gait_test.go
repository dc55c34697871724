package systems

import (
	"testing"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
)

func gaitSkeleton() *components.Skeleton {
	offsets := []geom.Vec2{
		{X: -20, Y: -12}, {X: 20, Y: -12},
		{X: -20, Y: 12}, {X: 20, Y: 12},
	}
	ids := []string{"FL", "FR", "BL", "BR"}
	skel := &components.Skeleton{StepOrder: []int{0, 3, 1, 2}}
	for i, off := range offsets {
		skel.Legs = append(skel.Legs, components.Leg{
			ID:        ids[i],
			HipOffset: off,
			L1:        30,
			L2:        30,
			BendRight: off.X >= 0,
		})
	}
	return skel
}

func plantAtRest(core geom.Vec2, skel *components.Skeleton) {
	for i := range skel.Legs {
		skel.Legs[i].Foot = IdealFootPosition(core, geom.Vec2{}, skel, i, 0)
	}
}

func TestIdealFootPosition(t *testing.T) {
	skel := gaitSkeleton()
	core := geom.Vec2{X: 100, Y: 50}
	vel := geom.Vec2{X: 3}

	got := IdealFootPosition(core, vel, skel, 1, 15)

	// hip + 1.5*offset + vel*lead = core + 2.5*offset + vel*lead.
	want := geom.Vec2{X: 100 + 2.5*20 + 45, Y: 50 - 2.5*12}
	if got != want {
		t.Errorf("ideal = %+v, want %+v", got, want)
	}
}

func TestScheduleTriggersOnlyNextLeg(t *testing.T) {
	skel := gaitSkeleton()
	gait := &components.Gait{TriggerDistance: 10, DurationTicks: 10, Height: 6, Lead: 0}
	plantAtRest(geom.Vec2{}, skel)

	// Settled feet never trigger.
	if started, _ := ScheduleStep(geom.Vec2{}, geom.Vec2{}, skel, gait); started {
		t.Fatal("triggered with feet at rest")
	}
	if skel.NextLegIndex() != 0 {
		t.Fatalf("cursor advanced without a trigger, next = %d", skel.NextLegIndex())
	}

	// Displacing the core past the trigger distance fires exactly the next
	// leg in order, even though every foot is now out of place.
	core := geom.Vec2{X: 20}
	started, overshoot := ScheduleStep(core, geom.Vec2{}, skel, gait)
	if !started {
		t.Fatal("no trigger after core displacement")
	}
	if !approxEq(overshoot, 20, 1e-4) {
		t.Errorf("overshoot = %v, want 20", overshoot)
	}
	for i := range skel.Legs {
		stepping := skel.Legs[i].Stepping()
		if i == 0 && !stepping {
			t.Error("leg 0 should be swinging")
		}
		if i != 0 && stepping {
			t.Errorf("leg %d swinging, only leg 0 should", i)
		}
	}

	leg := &skel.Legs[0]
	wantTarget := IdealFootPosition(core, geom.Vec2{}, skel, 0, 0)
	if leg.Step.Target != wantTarget {
		t.Errorf("target = %+v, want %+v", leg.Step.Target, wantTarget)
	}
	if leg.Step.Progress != 0 {
		t.Errorf("progress = %v, want 0 at trigger", leg.Step.Progress)
	}
	if skel.NextLegIndex() != 3 {
		t.Errorf("next = %d, want 3 after trigger", skel.NextLegIndex())
	}
}

func TestScheduleExactTriggerDistanceDoesNotFire(t *testing.T) {
	skel := gaitSkeleton()
	gait := &components.Gait{TriggerDistance: 10, DurationTicks: 10, Height: 6}
	plantAtRest(geom.Vec2{}, skel)

	if started, _ := ScheduleStep(geom.Vec2{X: 10}, geom.Vec2{}, skel, gait); started {
		t.Error("triggered at exactly the trigger distance, want strictly greater")
	}
}

func TestScheduleBlockedWhileSwinging(t *testing.T) {
	skel := gaitSkeleton()
	gait := &components.Gait{TriggerDistance: 10, DurationTicks: 10, Height: 6}
	plantAtRest(geom.Vec2{}, skel)
	skel.Legs[2].Step.Phase = components.StepSwinging

	started, _ := ScheduleStep(geom.Vec2{X: 50}, geom.Vec2{}, skel, gait)
	if started {
		t.Error("triggered while another leg was swinging")
	}
	if skel.NextLegIndex() != 0 {
		t.Errorf("cursor moved while blocked, next = %d", skel.NextLegIndex())
	}
}

func TestStepOrderRoundRobin(t *testing.T) {
	skel := gaitSkeleton()
	gait := &components.Gait{TriggerDistance: 10, DurationTicks: 4, Height: 6}
	core := geom.Vec2{}
	plantAtRest(core, skel)

	var order []int
	for len(order) < 8 {
		core = core.Add(geom.Vec2{X: 30})
		for tick := 0; tick < 100; tick++ {
			res := StepSkeleton(core, geom.Vec2{}, skel, gait)
			if res.Started {
				order = append(order, res.StartedLeg)
			}
			if !res.Started && !skel.AnyStepping() {
				break
			}
			if len(order) == 8 && !skel.AnyStepping() {
				break
			}
		}
	}

	want := []int{0, 3, 1, 2, 0, 3, 1, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("trigger order = %v, want %v", order, want)
		}
	}
}

func TestSwingExclusivity(t *testing.T) {
	skel := gaitSkeleton()
	gait := &components.Gait{TriggerDistance: 8, DurationTicks: 6, Height: 5}
	core := geom.Vec2{}
	plantAtRest(core, skel)

	for tick := 0; tick < 400; tick++ {
		core = core.Add(geom.Vec2{X: 2, Y: 1})
		StepSkeleton(core, geom.Vec2{X: 2, Y: 1}, skel, gait)
		if n := skel.SteppingCount(); n > 1 {
			t.Fatalf("tick %d: %d legs swinging, want at most 1", tick, n)
		}
	}
}

func TestSwingProgressMonotonicAndSnaps(t *testing.T) {
	skel := gaitSkeleton()
	gait := &components.Gait{TriggerDistance: 10, DurationTicks: 7, Height: 6}
	leg := &skel.Legs[0]
	start := geom.Vec2{X: -50, Y: -30}
	target := geom.Vec2{X: -36, Y: -30}
	leg.Foot = start
	leg.Step = components.StepState{
		Phase:  components.StepSwinging,
		Start:  start,
		Target: target,
	}

	prev := float32(0)
	ticks := 0
	for leg.Stepping() {
		AnimateSteps(skel, gait)
		ticks++
		if leg.Step.Progress <= prev && leg.Stepping() {
			t.Fatalf("progress did not advance: %v -> %v", prev, leg.Step.Progress)
		}
		prev = leg.Step.Progress
		if ticks > 20 {
			t.Fatal("swing never completed")
		}
	}

	if ticks != 7 {
		t.Errorf("swing took %d ticks, want 7", ticks)
	}
	if leg.Step.Progress != 1 {
		t.Errorf("progress = %v, want exactly 1", leg.Step.Progress)
	}
	if leg.Foot != target {
		t.Errorf("foot = %+v, want planted exactly on %+v", leg.Foot, target)
	}
	if leg.Step.Start != start || leg.Step.Target != target {
		t.Errorf("endpoints not retained: start %+v target %+v", leg.Step.Start, leg.Step.Target)
	}
}

func TestSwingPointPath(t *testing.T) {
	start := geom.Vec2{X: 10, Y: 20}
	target := geom.Vec2{X: 30, Y: 20}

	p0 := SwingPoint(start, target, 0, 8)
	if !approxEq(p0.X, start.X, 1e-4) || !approxEq(p0.Y, start.Y, 1e-4) {
		t.Errorf("t=0 point = %+v, want %+v", p0, start)
	}

	mid := SwingPoint(start, target, 0.5, 8)
	if !approxEq(mid.X, 20, 1e-4) || !approxEq(mid.Y, 12, 1e-4) {
		t.Errorf("t=0.5 point = %+v, want (20, 12)", mid)
	}

	p1 := SwingPoint(start, target, 1, 8)
	if !approxEq(p1.X, target.X, 1e-4) || !approxEq(p1.Y, target.Y, 1e-3) {
		t.Errorf("t=1 point = %+v, want %+v", p1, target)
	}
}

func TestSwingLiftPeaksMidway(t *testing.T) {
	skel := gaitSkeleton()
	gait := &components.Gait{TriggerDistance: 10, DurationTicks: 2, Height: 6}
	leg := &skel.Legs[0]
	start := geom.Vec2{}
	target := geom.Vec2{X: 14}
	leg.Foot = start
	leg.Step = components.StepState{
		Phase:  components.StepSwinging,
		Start:  start,
		Target: target,
	}

	completed := AnimateSteps(skel, gait)
	if completed != 0 {
		t.Fatal("swing completed on its first of two ticks")
	}
	// Halfway: cosine ease puts the foot at the horizontal midpoint, the
	// half-sine lift raises it by the full step height.
	if !approxEq(leg.Foot.X, 7, 1e-4) || !approxEq(leg.Foot.Y, -6, 1e-4) {
		t.Errorf("midswing foot = %+v, want (7, -6)", leg.Foot)
	}

	completed = AnimateSteps(skel, gait)
	if completed != 1 {
		t.Fatal("swing did not complete on its second tick")
	}
	if leg.Foot != target {
		t.Errorf("foot = %+v, want %+v", leg.Foot, target)
	}
	if leg.Stepping() {
		t.Error("leg still swinging after completion")
	}
}

func TestStepSkeletonReportsTrigger(t *testing.T) {
	skel := gaitSkeleton()
	gait := &components.Gait{TriggerDistance: 10, DurationTicks: 10, Height: 6}
	plantAtRest(geom.Vec2{}, skel)

	res := StepSkeleton(geom.Vec2{X: 20}, geom.Vec2{}, skel, gait)

	if !res.Started || res.StartedLeg != 0 {
		t.Fatalf("res = %+v, want leg 0 started", res)
	}
	if !approxEq(res.Overshoot, 20, 1e-4) {
		t.Errorf("overshoot = %v, want 20", res.Overshoot)
	}
	if !approxEq(res.StepLength, 20, 1e-4) {
		t.Errorf("step length = %v, want 20", res.StepLength)
	}
	// The fresh swing advanced on the same tick.
	if got := skel.Legs[0].Step.Progress; !approxEq(got, 0.1, 1e-4) {
		t.Errorf("progress after first tick = %v, want 0.1", got)
	}
}

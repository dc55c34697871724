// Package systems implements the per-tick animation passes: locomotion of
// the creature cores, gait scheduling, step animation and the IK solve.
// All passes are pure functions over component data; the game loop owns
// the ECS queries and feeds entities through them.
package systems

import (
	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
)

// StepResult reports what the gait pass did for one skeleton on one tick.
type StepResult struct {
	// Started is true when a new swing was triggered this tick.
	Started bool
	// StartedLeg is the leg index that began swinging, -1 otherwise.
	StartedLeg int
	// Overshoot is the foot-to-ideal distance at the moment of trigger.
	Overshoot float32
	// StepLength is the planned start-to-target distance of the new swing.
	StepLength float32
	// Completed counts legs that planted this tick.
	Completed int
}

// IdealFootPosition returns the rest target for leg i: half the hip offset
// again beyond the hip, shifted ahead of the core's travel by lead ticks
// worth of velocity.
func IdealFootPosition(core, vel geom.Vec2, skel *components.Skeleton, i int, lead float32) geom.Vec2 {
	leg := &skel.Legs[i]
	hip := core.Add(leg.HipOffset)
	return hip.Add(leg.HipOffset.Scale(1.5)).Add(vel.Scale(lead))
}

// ScheduleStep runs the trigger check for one skeleton. Only the next leg
// in the cyclic order is considered, and only while no other leg is mid
// swing. On trigger the leg enters its swing with fresh endpoints and the
// cursor advances past it.
func ScheduleStep(core, vel geom.Vec2, skel *components.Skeleton, gait *components.Gait) (started bool, overshoot float32) {
	if skel.AnyStepping() {
		return false, 0
	}
	i := skel.NextLegIndex()
	leg := &skel.Legs[i]
	ideal := IdealFootPosition(core, vel, skel, i, gait.Lead)
	dist := leg.Foot.DistanceTo(ideal)
	if dist <= gait.TriggerDistance {
		return false, 0
	}
	leg.Step = components.StepState{
		Phase:    components.StepSwinging,
		Progress: 0,
		Start:    leg.Foot,
		Target:   ideal,
	}
	skel.AdvanceCursor()
	return true, dist
}

// SwingPoint returns the foot position at swing progress t in [0, 1]: a
// cosine-eased path between the endpoints, lifted by a half-sine arc that
// is zero at both ends.
func SwingPoint(start, target geom.Vec2, t, height float32) geom.Vec2 {
	p := geom.Lerp(start, target, easeCosine(t))
	p.Y -= arcLift(t, height)
	return p
}

// AnimateSteps advances every in-flight swing by one tick. The foot tracks
// the swing path between the stored endpoints and plants exactly on the
// target when progress reaches one. Returns the number of legs that
// planted.
func AnimateSteps(skel *components.Skeleton, gait *components.Gait) int {
	completed := 0
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		if !leg.Stepping() {
			continue
		}
		leg.Step.Progress += 1 / gait.DurationTicks
		if leg.Step.Progress >= 1 {
			leg.Step.Progress = 1
			leg.Foot = leg.Step.Target
			leg.Step.Phase = components.StepIdle
			completed++
			continue
		}
		leg.Foot = SwingPoint(leg.Step.Start, leg.Step.Target, leg.Step.Progress, gait.Height)
	}
	return completed
}

// StepSkeleton runs one full gait tick for a skeleton: the trigger check
// first, then swing animation, so a freshly triggered swing takes its
// first movement on the same tick.
func StepSkeleton(core, vel geom.Vec2, skel *components.Skeleton, gait *components.Gait) StepResult {
	res := StepResult{StartedLeg: -1}
	next := skel.NextLegIndex()
	started, overshoot := ScheduleStep(core, vel, skel, gait)
	if started {
		res.Started = true
		res.StartedLeg = next
		res.Overshoot = overshoot
		leg := &skel.Legs[next]
		res.StepLength = leg.Step.Start.DistanceTo(leg.Step.Target)
	}
	res.Completed = AnimateSteps(skel, gait)
	return res
}

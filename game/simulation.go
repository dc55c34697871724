package game

import (
	"github.com/pthm-cable/squirm/systems"
	"github.com/pthm-cable/squirm/telemetry"
)

// simulationStep runs a single tick of the animation. extract controls
// whether the skin phase runs this tick; windowed mode only extracts on
// the last step of a frame batch, headless mode at window sample points.
func (g *Game) simulationStep(extract bool) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseLocomotion)
	g.updateLocomotion()

	g.perfCollector.StartPhase(telemetry.PhaseGait)
	g.updateGait()

	g.perfCollector.StartPhase(telemetry.PhaseKinematics)
	g.updateKinematics()

	if extract {
		g.perfCollector.StartPhase(telemetry.PhaseSkin)
		g.updateContours()
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// updateLocomotion moves every core toward its wander target and writes
// the applied delta as the creature's velocity.
func (g *Game) updateLocomotion() {
	cfg := g.config()
	maxSpeed := float32(cfg.Locomotion.MaxSpeed)
	arrive := float32(cfg.Locomotion.ArriveRadius)

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, vel, _, _, _, meta := query.Get()

		target := g.locomotion.Target(meta.ID, g.tick)
		newPos, delta := g.locomotion.Advance(pos.Vec(), target, maxSpeed, arrive)
		pos.Set(newPos)
		vel.Set(delta)

		g.lifetimeTracker.RecordTravel(meta.ID, delta.Length())
	}
}

// updateGait schedules and animates steps for every skeleton.
func (g *Game) updateGait() {
	query := g.creatureFilter.Query()
	for query.Next() {
		pos, vel, skel, gait, _, meta := query.Get()

		res := systems.StepSkeleton(pos.Vec(), vel.Vec(), skel, gait)
		if res.Started {
			g.collector.RecordStepStarted(res.Overshoot, res.StepLength)
			g.lifetimeTracker.RecordStep(meta.ID)
		}
		if res.Completed > 0 {
			g.collector.RecordStepsCompleted(res.Completed)
			g.lifetimeTracker.RecordStepsCompleted(meta.ID, res.Completed)
		}
	}
}

// updateKinematics re-solves every knee from the current hips and feet
// and tracks IK strain.
func (g *Game) updateKinematics() {
	query := g.creatureFilter.Query()
	for query.Next() {
		pos, _, skel, _, _, meta := query.Get()

		core := pos.Vec()
		clamps := systems.SolveSkeleton(core, skel)
		if clamps > 0 {
			g.collector.RecordStretchClamps(clamps)
		}

		for i := range skel.Legs {
			leg := &skel.Legs[i]
			reach := leg.L1 + leg.L2
			if reach <= 0 {
				continue
			}
			dist := skel.Hip(core, i).DistanceTo(leg.Foot)
			g.lifetimeTracker.RecordStretch(meta.ID, dist/reach)
		}
	}
}

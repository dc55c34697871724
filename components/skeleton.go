// Package components defines the ECS components for creature animation.
// Position, Velocity and Skeleton together form one creature's articulated
// body: the core moves, the skeleton carries the legs the gait and IK
// passes mutate each tick.
package components

import "github.com/pthm-cable/squirm/geom"

// StepPhase is the per-leg gait state.
type StepPhase uint8

const (
	StepIdle StepPhase = iota
	StepSwinging
)

// StepState is the explicit two-phase step machine for one leg. Progress,
// Start and Target describe the current swing while the phase is
// StepSwinging, and the most recently completed swing afterwards.
type StepState struct {
	Phase    StepPhase
	Progress float32   // 0..1 while swinging; exactly 1 after completion
	Start    geom.Vec2 // foot position when the swing began
	Target   geom.Vec2 // planted position the swing ends on
}

// Leg is one limb. Legs are owned by exactly one Skeleton and keep their
// creation order for the life of the creature.
type Leg struct {
	ID        string    // stable label, e.g. "FL"
	HipOffset geom.Vec2 // constant offset from the core, set at creation
	L1        float32   // upper bone length
	L2        float32   // lower bone length
	BendRight bool      // knee bend side for the IK solve

	Foot geom.Vec2 // recomputed every tick
	Knee geom.Vec2 // recomputed every tick

	Step StepState
}

// Stepping reports whether the leg is mid-swing.
func (l *Leg) Stepping() bool {
	return l.Step.Phase == StepSwinging
}

// Skeleton holds the ordered leg list plus the round-robin scheduling
// state. Leg order is significant and never changes after creation.
type Skeleton struct {
	Legs      []Leg
	StepOrder []int // cyclic scheduling order over leg indices
	Cursor    int   // position in StepOrder; advanced only on trigger
}

// Hip returns the world anchor of leg i for the given core position.
func (s *Skeleton) Hip(core geom.Vec2, i int) geom.Vec2 {
	return core.Add(s.Legs[i].HipOffset)
}

// LegByID returns the leg carrying the given label, or nil. External
// collaborators anchor to limbs by name, never by index.
func (s *Skeleton) LegByID(id string) *Leg {
	for i := range s.Legs {
		if s.Legs[i].ID == id {
			return &s.Legs[i]
		}
	}
	return nil
}

// AnyStepping reports whether any leg is mid-swing.
func (s *Skeleton) AnyStepping() bool {
	for i := range s.Legs {
		if s.Legs[i].Stepping() {
			return true
		}
	}
	return false
}

// SteppingCount returns the number of mid-swing legs. The scheduler keeps
// this at most 1.
func (s *Skeleton) SteppingCount() int {
	n := 0
	for i := range s.Legs {
		if s.Legs[i].Stepping() {
			n++
		}
	}
	return n
}

// NextLegIndex returns the leg index the scheduler inspects next.
func (s *Skeleton) NextLegIndex() int {
	return s.StepOrder[s.Cursor]
}

// AdvanceCursor moves the round-robin cursor one position, wrapping.
func (s *Skeleton) AdvanceCursor() {
	s.Cursor = (s.Cursor + 1) % len(s.StepOrder)
}

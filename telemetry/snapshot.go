package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
	"github.com/pthm-cable/squirm/morph"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a complete animation pose for replay.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`
	Tick    int64 `json:"tick"`

	WorldWidth  float32 `json:"world_width"`
	WorldHeight float32 `json:"world_height"`

	Creatures []CreatureState `json:"creatures"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// CreatureState holds one creature's complete pose. Knees are not stored;
// the IK pass recomputes them from hips and feet.
type CreatureState struct {
	ID        uint32        `json:"id"`
	Name      string        `json:"name"`
	Variant   morph.Variant `json:"variant"`
	SpawnTick int64         `json:"spawn_tick"`

	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	VelX float32 `json:"vel_x"`
	VelY float32 `json:"vel_y"`

	Gait GaitParamsJSON `json:"gait"`
	Skin SkinParamsJSON `json:"skin"`
	Legs []LegState     `json:"legs"`

	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// GaitParamsJSON is the JSON form of the gait component plus the cyclic
// order and cursor needed to resume scheduling.
type GaitParamsJSON struct {
	TriggerDistance float32 `json:"trigger_distance"`
	DurationTicks   float32 `json:"duration_ticks"`
	Height          float32 `json:"height"`
	Lead            float32 `json:"lead"`
	Order           []int   `json:"order"`
	Cursor          int     `json:"cursor"`
}

// SkinParamsJSON is the JSON form of the skin component.
type SkinParamsJSON struct {
	CoreRadius float32 `json:"core_radius"`
	CoreWeight float32 `json:"core_weight"`
	HipRadius  float32 `json:"hip_radius"`
	HipWeight  float32 `json:"hip_weight"`
	KneeRadius float32 `json:"knee_radius"`
	KneeWeight float32 `json:"knee_weight"`
	FootRadius float32 `json:"foot_radius"`
	FootWeight float32 `json:"foot_weight"`
}

// LegState holds one leg's skeleton and step machine state.
type LegState struct {
	ID         string  `json:"id"`
	HipOffsetX float32 `json:"hip_offset_x"`
	HipOffsetY float32 `json:"hip_offset_y"`
	L1         float32 `json:"l1"`
	L2         float32 `json:"l2"`
	BendRight  bool    `json:"bend_right"`
	FootX      float32 `json:"foot_x"`
	FootY      float32 `json:"foot_y"`
	Phase      uint8   `json:"phase"`
	Progress   float32 `json:"progress"`
	StartX     float32 `json:"start_x"`
	StartY     float32 `json:"start_y"`
	TargetX    float32 `json:"target_x"`
	TargetY    float32 `json:"target_y"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	SpawnTick        int64   `json:"spawn_tick"`
	AliveSec         float32 `json:"alive_sec"`
	StepsStarted     int     `json:"steps_started"`
	StepsCompleted   int     `json:"steps_completed"`
	DistanceTraveled float32 `json:"distance_traveled"`
	MaxStretchRatio  float32 `json:"max_stretch_ratio"`
	StretchClamps    int     `json:"stretch_clamps"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		SpawnTick:        ls.SpawnTick,
		AliveSec:         ls.AliveSec,
		StepsStarted:     ls.StepsStarted,
		StepsCompleted:   ls.StepsCompleted,
		DistanceTraveled: ls.DistanceTraveled,
		MaxStretchRatio:  ls.MaxStretchRatio,
		StretchClamps:    ls.StretchClamps,
	}
}

// FromJSON converts the JSON form back to LifetimeStats.
func (lsj *LifetimeStatsJSON) FromJSON() *LifetimeStats {
	if lsj == nil {
		return nil
	}
	return &LifetimeStats{
		SpawnTick:        lsj.SpawnTick,
		AliveSec:         lsj.AliveSec,
		StepsStarted:     lsj.StepsStarted,
		StepsCompleted:   lsj.StepsCompleted,
		DistanceTraveled: lsj.DistanceTraveled,
		MaxStretchRatio:  lsj.MaxStretchRatio,
		StretchClamps:    lsj.StretchClamps,
	}
}

// CaptureCreature builds the serializable pose of one creature.
func CaptureCreature(
	meta *components.Meta,
	pos *components.Position,
	vel *components.Velocity,
	skel *components.Skeleton,
	gait *components.Gait,
	skin *components.SkinParams,
	lifetime *LifetimeStats,
) CreatureState {
	cs := CreatureState{
		ID:        meta.ID,
		Name:      meta.Name,
		Variant:   meta.Variant,
		SpawnTick: meta.SpawnTick,
		X:         pos.X,
		Y:         pos.Y,
		VelX:      vel.X,
		VelY:      vel.Y,
		Gait: GaitParamsJSON{
			TriggerDistance: gait.TriggerDistance,
			DurationTicks:   gait.DurationTicks,
			Height:          gait.Height,
			Lead:            gait.Lead,
			Order:           append([]int(nil), skel.StepOrder...),
			Cursor:          skel.Cursor,
		},
		Skin: SkinParamsJSON{
			CoreRadius: skin.Core.Radius,
			CoreWeight: skin.Core.Weight,
			HipRadius:  skin.Hip.Radius,
			HipWeight:  skin.Hip.Weight,
			KneeRadius: skin.Knee.Radius,
			KneeWeight: skin.Knee.Weight,
			FootRadius: skin.Foot.Radius,
			FootWeight: skin.Foot.Weight,
		},
		Lifetime: lifetime.ToJSON(),
	}

	cs.Legs = make([]LegState, len(skel.Legs))
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		cs.Legs[i] = LegState{
			ID:         leg.ID,
			HipOffsetX: leg.HipOffset.X,
			HipOffsetY: leg.HipOffset.Y,
			L1:         leg.L1,
			L2:         leg.L2,
			BendRight:  leg.BendRight,
			FootX:      leg.Foot.X,
			FootY:      leg.Foot.Y,
			Phase:      uint8(leg.Step.Phase),
			Progress:   leg.Step.Progress,
			StartX:     leg.Step.Start.X,
			StartY:     leg.Step.Start.Y,
			TargetX:    leg.Step.Target.X,
			TargetY:    leg.Step.Target.Y,
		}
	}

	return cs
}

// RestoreCreature writes a captured pose back into component values.
func RestoreCreature(
	cs CreatureState,
	meta *components.Meta,
	pos *components.Position,
	vel *components.Velocity,
	skel *components.Skeleton,
	gait *components.Gait,
	skin *components.SkinParams,
) {
	meta.ID = cs.ID
	meta.Name = cs.Name
	meta.Variant = cs.Variant
	meta.SpawnTick = cs.SpawnTick
	meta.TintR, meta.TintG, meta.TintB = morph.Tint(cs.Variant)

	pos.X, pos.Y = cs.X, cs.Y
	vel.X, vel.Y = cs.VelX, cs.VelY

	gait.TriggerDistance = cs.Gait.TriggerDistance
	gait.DurationTicks = cs.Gait.DurationTicks
	gait.Height = cs.Gait.Height
	gait.Lead = cs.Gait.Lead

	skin.Core = components.JointParams{Radius: cs.Skin.CoreRadius, Weight: cs.Skin.CoreWeight}
	skin.Hip = components.JointParams{Radius: cs.Skin.HipRadius, Weight: cs.Skin.HipWeight}
	skin.Knee = components.JointParams{Radius: cs.Skin.KneeRadius, Weight: cs.Skin.KneeWeight}
	skin.Foot = components.JointParams{Radius: cs.Skin.FootRadius, Weight: cs.Skin.FootWeight}

	skel.StepOrder = append([]int(nil), cs.Gait.Order...)
	skel.Cursor = cs.Gait.Cursor
	skel.Legs = make([]components.Leg, len(cs.Legs))
	for i, ls := range cs.Legs {
		skel.Legs[i] = components.Leg{
			ID:        ls.ID,
			HipOffset: geom.Vec2{X: ls.HipOffsetX, Y: ls.HipOffsetY},
			L1:        ls.L1,
			L2:        ls.L2,
			BendRight: ls.BendRight,
			Foot:      geom.Vec2{X: ls.FootX, Y: ls.FootY},
			Step: components.StepState{
				Phase:    components.StepPhase(ls.Phase),
				Progress: ls.Progress,
				Start:    geom.Vec2{X: ls.StartX, Y: ls.StartY},
				Target:   geom.Vec2{X: ls.TargetX, Y: ls.TargetY},
			},
		}
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

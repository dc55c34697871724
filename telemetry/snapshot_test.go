package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
	"github.com/pthm-cable/squirm/morph"
)

func testCreatureState() CreatureState {
	return CreatureState{
		ID:        1,
		Name:      "creature-1",
		Variant:   morph.Longlegged,
		SpawnTick: 100,
		X:         150,
		Y:         250,
		VelX:      0.5,
		VelY:      -0.3,
		Gait: GaitParamsJSON{
			TriggerDistance: 18,
			DurationTicks:   14,
			Height:          10,
			Lead:            12,
			Order:           []int{0, 3, 1, 2},
			Cursor:          2,
		},
		Skin: SkinParamsJSON{
			CoreRadius: 34, CoreWeight: 1,
			HipRadius: 18, HipWeight: 0.55,
			KneeRadius: 14, KneeWeight: 0.5,
			FootRadius: 10, FootWeight: 0.45,
		},
		Legs: []LegState{
			{
				ID: "FL", HipOffsetX: -20, HipOffsetY: -12, L1: 30, L2: 30,
				FootX: 100, FootY: 280,
				Phase: uint8(components.StepSwinging), Progress: 0.5,
				StartX: 95, StartY: 280, TargetX: 110, TargetY: 281,
			},
			{
				ID: "FR", HipOffsetX: 20, HipOffsetY: -12, L1: 30, L2: 30, BendRight: true,
				FootX: 200, FootY: 282,
			},
		},
		Lifetime: &LifetimeStatsJSON{
			SpawnTick:        100,
			AliveSec:         15,
			StepsStarted:     40,
			StepsCompleted:   39,
			DistanceTraveled: 512.5,
			MaxStretchRatio:  1.04,
			StretchClamps:    3,
		},
	}
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     42,
		Tick:        1000,
		WorldWidth:  1280,
		WorldHeight: 720,
		Creatures:   []CreatureState{testCreatureState()},
		Bookmark: &Bookmark{
			Type:        BookmarkStretchSpike,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Version != snapshot.Version {
		t.Errorf("Version mismatch: got %d, want %d", loaded.Version, snapshot.Version)
	}
	if loaded.RNGSeed != snapshot.RNGSeed {
		t.Errorf("RNGSeed mismatch: got %d, want %d", loaded.RNGSeed, snapshot.RNGSeed)
	}
	if loaded.Tick != snapshot.Tick {
		t.Errorf("Tick mismatch: got %d, want %d", loaded.Tick, snapshot.Tick)
	}
	if len(loaded.Creatures) != 1 {
		t.Fatalf("Creatures count mismatch: got %d, want 1", len(loaded.Creatures))
	}

	creature := loaded.Creatures[0]
	if creature.Variant != morph.Longlegged {
		t.Errorf("Variant mismatch: got %v, want %v", creature.Variant, morph.Longlegged)
	}
	if len(creature.Legs) != 2 {
		t.Fatalf("Legs count mismatch: got %d, want 2", len(creature.Legs))
	}
	if creature.Legs[0].Progress != 0.5 || creature.Legs[0].TargetX != 110 {
		t.Errorf("Leg state mismatch: %+v", creature.Legs[0])
	}
	if creature.Lifetime == nil || creature.Lifetime.StepsStarted != 40 {
		t.Errorf("Lifetime mismatch: %+v", creature.Lifetime)
	}

	if loaded.Bookmark == nil {
		t.Error("Bookmark not loaded")
	} else if loaded.Bookmark.Type != snapshot.Bookmark.Type {
		t.Errorf("Bookmark type mismatch: got %s, want %s", loaded.Bookmark.Type, snapshot.Bookmark.Type)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	// Test with bookmark
	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Tick:    5000,
		Bookmark: &Bookmark{
			Type: BookmarkStepStarvation,
			Tick: 5000,
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected := filepath.Join(tmpDir, "snapshot_5000_step_starvation.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	// Test without bookmark
	snapshotNoBookmark := &Snapshot{
		Version: SnapshotVersion,
		Tick:    3000,
	}

	path, err = SaveSnapshot(snapshotNoBookmark, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected = filepath.Join(tmpDir, "snapshot_3000.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	meta := components.Meta{ID: 7, Name: "creature-7", Variant: morph.Heavyset, SpawnTick: 50}
	pos := components.Position{X: 300, Y: 200}
	vel := components.Velocity{X: 1.5, Y: -0.5}
	skel := components.Skeleton{
		Legs: []components.Leg{
			{
				ID:        "FL",
				HipOffset: geom.Vec2{X: -20, Y: -12},
				L1:        30, L2: 28,
				Foot: geom.Vec2{X: 250, Y: 230},
				Step: components.StepState{
					Phase:    components.StepSwinging,
					Progress: 0.25,
					Start:    geom.Vec2{X: 245, Y: 230},
					Target:   geom.Vec2{X: 260, Y: 231},
				},
			},
			{
				ID:        "FR",
				HipOffset: geom.Vec2{X: 20, Y: -12},
				L1:        30, L2: 28,
				BendRight: true,
				Foot:      geom.Vec2{X: 350, Y: 231},
			},
		},
		StepOrder: []int{0, 1},
		Cursor:    1,
	}
	gait := components.Gait{TriggerDistance: 18, DurationTicks: 14, Height: 10, Lead: 12}
	skin := components.SkinParams{
		Core: components.JointParams{Radius: 34, Weight: 1},
		Hip:  components.JointParams{Radius: 18, Weight: 0.55},
		Knee: components.JointParams{Radius: 14, Weight: 0.5},
		Foot: components.JointParams{Radius: 10, Weight: 0.45},
	}
	lifetime := &LifetimeStats{SpawnTick: 50, StepsStarted: 12}

	state := CaptureCreature(&meta, &pos, &vel, &skel, &gait, &skin, lifetime)

	var (
		gotMeta components.Meta
		gotPos  components.Position
		gotVel  components.Velocity
		gotSkel components.Skeleton
		gotGait components.Gait
		gotSkin components.SkinParams
	)
	RestoreCreature(state, &gotMeta, &gotPos, &gotVel, &gotSkel, &gotGait, &gotSkin)

	if gotMeta.ID != 7 || gotMeta.Variant != morph.Heavyset {
		t.Errorf("meta = %+v", gotMeta)
	}
	wantR, wantG, wantB := morph.Tint(morph.Heavyset)
	if gotMeta.TintR != wantR || gotMeta.TintG != wantG || gotMeta.TintB != wantB {
		t.Errorf("tint not rederived from variant: %+v", gotMeta)
	}
	if gotPos != pos || gotVel != vel {
		t.Errorf("pos/vel = %+v/%+v, want %+v/%+v", gotPos, gotVel, pos, vel)
	}
	if gotGait != gait {
		t.Errorf("gait = %+v, want %+v", gotGait, gait)
	}
	if gotSkin != skin {
		t.Errorf("skin = %+v, want %+v", gotSkin, skin)
	}
	if gotSkel.Cursor != 1 || len(gotSkel.StepOrder) != 2 {
		t.Errorf("scheduling state = cursor %d order %v", gotSkel.Cursor, gotSkel.StepOrder)
	}
	if len(gotSkel.Legs) != 2 {
		t.Fatalf("legs = %d, want 2", len(gotSkel.Legs))
	}
	leg := gotSkel.Legs[0]
	if leg.Step.Phase != components.StepSwinging || leg.Step.Progress != 0.25 {
		t.Errorf("step state = %+v", leg.Step)
	}
	if leg.Foot != skel.Legs[0].Foot || leg.Step.Target != skel.Legs[0].Step.Target {
		t.Errorf("leg pose = %+v", leg)
	}
}

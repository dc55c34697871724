package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squirm/telemetry"
	"github.com/pthm-cable/squirm/ui"
)

// cullRadius is the world-space slack around a creature's core when
// testing view visibility. Generous enough to cover leg reach plus the
// skin grid padding.
const cullRadius = float32(220)

const controlsHelp = "SPACE pause | N step | , . speed | LMB select | F follow | RMB pan | wheel zoom | HOME reset | O panels | U tuner | P perf | S snapshot"

// Draw renders one frame from the latest extracted pose.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()

	g.background.Draw(g.camera)
	g.drawCreatures()
	g.drawSelectionRing()
	g.drawUI()

	rl.EndDrawing()
}

// drawCreatures walks the extraction pairs produced by updateContours and
// renders whichever overlays are enabled.
func (g *Game) drawCreatures() {
	showContour := g.overlays.IsEnabled(ui.OverlayContour)
	showSkeleton := g.overlays.IsEnabled(ui.OverlaySkeleton)
	showFeet := g.overlays.IsEnabled(ui.OverlayFootTargets)
	showArcs := g.overlays.IsEnabled(ui.OverlayStepArcs)
	showGrid := g.overlays.IsEnabled(ui.OverlayGridBounds)
	showHeat := g.overlays.IsEnabled(ui.OverlayFieldHeat)
	showDots := g.overlays.IsEnabled(ui.OverlayFieldDots)

	p := g.parallel
	for i := range p.jobs {
		job := &p.jobs[i]
		if !g.camera.IsVisible(job.Core.X, job.Core.Y, cullRadius) {
			continue
		}

		res := &p.results[i]
		if res.OK {
			// Field debug layers go under the contour
			if showHeat {
				g.creatureRenderer.DrawFieldHeat(g.camera, &res.Grid, g.extractor.Iso)
			}
			if showDots {
				g.creatureRenderer.DrawFieldDots(g.camera, &res.Grid, g.extractor.Iso)
			}
			if showGrid {
				g.creatureRenderer.DrawGridBounds(g.camera, &res.Grid)
			}
			if showContour {
				g.creatureRenderer.DrawContour(g.camera, res.Segments, job.Meta.TintR, job.Meta.TintG, job.Meta.TintB)
			}
		}

		if showSkeleton {
			g.creatureRenderer.DrawSkeleton(g.camera, job.Core, job.Skel, job.Meta.TintR, job.Meta.TintG, job.Meta.TintB)
		}
		if showFeet {
			g.creatureRenderer.DrawFootTargets(g.camera, job.Core, job.Vel, job.Skel, job.Gait)
		}
		if showArcs {
			g.creatureRenderer.DrawStepArcs(g.camera, job.Skel, job.Gait)
		}
	}
}

// drawSelectionRing marks the selected creature. Drops the selection if
// the entity is gone.
func (g *Game) drawSelectionRing() {
	if !g.hasSelected {
		return
	}
	pos := g.posMap.Get(g.selected)
	skinp := g.skinMap.Get(g.selected)
	if pos == nil || skinp == nil {
		g.hasSelected = false
		g.following = false
		return
	}
	g.creatureRenderer.DrawSelection(g.camera, pos.Vec(), skinp.Core.Radius+8, g.tick)
}

// drawUI renders the HUD and every visible panel.
func (g *Game) drawUI() {
	swinging := 0
	for i := range g.parallel.jobs {
		swinging += g.parallel.jobs[i].Skel.SteppingCount()
	}

	selectedName := ""
	if g.hasSelected {
		if meta := g.metaMap.Get(g.selected); meta != nil {
			selectedName = meta.Name
		}
	}

	g.hud.Draw(ui.HUDData{
		Title:        "Squirm",
		Creatures:    g.creatureCount,
		Swinging:     swinging,
		Segments:     g.parallel.totalSegments(),
		Tick:         g.tick,
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		Following:    g.following,
		Selected:     selectedName,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsHelp)

	if g.controlsPanel.IsVisible() {
		bottom := g.controlsPanel.Draw(g.overlays)
		g.quickStats.SetPosition(panelMargin, bottom+8)
		g.quickStats.Draw(ui.QuickStatsData{
			StepsPerSec:  float32(g.lastStats.StepsPerSec),
			SteppingNow:  g.lastStats.SteppingNow,
			Creatures:    g.creatureCount,
			ClampsPerSec: float32(g.lastStats.ClampsPerSec),
			AvgSegments:  float32(g.lastStats.SegmentsMean),
		})
	}

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats(), []string{
			telemetry.PhaseLocomotion,
			telemetry.PhaseGait,
			telemetry.PhaseKinematics,
			telemetry.PhaseSkin,
			telemetry.PhaseTelemetry,
		})
	}

	// Tuner sits under the inspector when a creature is selected,
	// otherwise it takes the inspector's spot.
	tunerY := int32(panelMargin)
	if g.hasSelected {
		if data, ok := g.inspectorData(); ok {
			tunerY = g.inspector.Draw(data) + 8
		}
	}
	g.tunerPanel.SetPosition(int32(g.screenWidth)-inspectorWidth-panelMargin, tunerY)

	changed, reset := g.tunerPanel.Draw(&g.tunerState, g.hasSelected)
	if reset {
		g.resetTunerState()
		changed = true
	}
	if changed {
		g.applyTunerState()
	}
}

// inspectorData gathers the selected creature's components. Reports false
// and clears the selection if the entity is gone.
func (g *Game) inspectorData() (ui.InspectorData, bool) {
	meta := g.metaMap.Get(g.selected)
	pos := g.posMap.Get(g.selected)
	vel := g.velMap.Get(g.selected)
	skel := g.skelMap.Get(g.selected)
	gait := g.gaitMap.Get(g.selected)
	skinp := g.skinMap.Get(g.selected)
	if meta == nil || pos == nil || vel == nil || skel == nil || gait == nil || skinp == nil {
		g.hasSelected = false
		g.following = false
		return ui.InspectorData{}, false
	}

	return ui.InspectorData{
		Meta:     meta,
		Pos:      pos.Vec(),
		Vel:      vel.Vec(),
		Skeleton: skel,
		Gait:     gait,
		Skin:     skinp,
		Lifetime: g.lifetimeTracker.Get(meta.ID),
	}, true
}

// applyTunerState pushes tuner values into the extractor and, when a
// creature is selected, into its gait.
func (g *Game) applyTunerState() {
	g.extractor.Iso = g.tunerState.Iso
	g.extractor.CellSize = g.tunerState.CellSize
	g.extractor.Padding = g.tunerState.Padding

	if g.hasSelected {
		if gait := g.gaitMap.Get(g.selected); gait != nil {
			gait.TriggerDistance = g.tunerState.TriggerDistance
			gait.DurationTicks = g.tunerState.DurationTicks
			gait.Height = g.tunerState.StepHeight
			gait.Lead = g.tunerState.Lead
		}
	}

	// Re-extract while paused so skin slider changes show immediately
	if g.paused {
		g.updateContours()
	}
}

// resetTunerState reloads the tuner from config defaults and applies the
// skin values to the extractor.
func (g *Game) resetTunerState() {
	cfg := g.config()
	g.tunerState = ui.TunerState{
		Iso:             float32(cfg.Skin.Iso),
		CellSize:        float32(cfg.Skin.CellSize),
		Padding:         float32(cfg.Skin.Padding),
		TriggerDistance: float32(cfg.Gait.TriggerDistance),
		DurationTicks:   float32(cfg.Gait.DurationTicks),
		StepHeight:      float32(cfg.Gait.Height),
		Lead:            float32(cfg.Gait.Lead),
	}
	g.extractor.Iso = g.tunerState.Iso
	g.extractor.CellSize = g.tunerState.CellSize
	g.extractor.Padding = g.tunerState.Padding
}

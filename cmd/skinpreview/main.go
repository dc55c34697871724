// Skin preview tool - interactive metaball contour playground.
//
// Usage: go run ./cmd/skinpreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/config"
	"github.com/pthm-cable/squirm/geom"
	"github.com/pthm-cable/squirm/skin"
	"github.com/pthm-cable/squirm/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 780
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	// Animated mode walks the core around this circle
	walkRadius = 60
	walkSpeed  = 0.02
)

// SkinValues holds the tunable field parameters.
type SkinValues struct {
	Iso      float32
	CellSize float32
	Padding  float32

	CoreRadius float32
	CoreWeight float32
	HipRadius  float32
	HipWeight  float32
	KneeRadius float32
	KneeWeight float32
	FootRadius float32
	FootWeight float32
}

func defaultValues(cfg *config.Config) SkinValues {
	return SkinValues{
		Iso:        float32(cfg.Skin.Iso),
		CellSize:   float32(cfg.Skin.CellSize),
		Padding:    float32(cfg.Skin.Padding),
		CoreRadius: float32(cfg.Skin.Core.Radius),
		CoreWeight: float32(cfg.Skin.Core.Weight),
		HipRadius:  float32(cfg.Skin.Hip.Radius),
		HipWeight:  float32(cfg.Skin.Hip.Weight),
		KneeRadius: float32(cfg.Skin.Knee.Radius),
		KneeWeight: float32(cfg.Skin.Knee.Weight),
		FootRadius: float32(cfg.Skin.Foot.Radius),
		FootWeight: float32(cfg.Skin.Foot.Weight),
	}
}

// testSkeleton builds one four-legged skeleton from the config baseline
// with feet at their rest targets.
func testSkeleton(cfg *config.Config, gait *components.Gait) components.Skeleton {
	l1 := float32(cfg.Creature.BoneUpper)
	l2 := float32(cfg.Creature.BoneLower)
	hipX := float32(cfg.Creature.HipSpanX)
	hipY := float32(cfg.Creature.HipSpanY)

	skel := components.Skeleton{
		Legs: []components.Leg{
			{ID: "FL", HipOffset: geom.Vec2{X: -hipX, Y: -hipY}, L1: l1, L2: l2},
			{ID: "FR", HipOffset: geom.Vec2{X: hipX, Y: -hipY}, L1: l1, L2: l2},
			{ID: "BL", HipOffset: geom.Vec2{X: -hipX, Y: hipY}, L1: l1, L2: l2},
			{ID: "BR", HipOffset: geom.Vec2{X: hipX, Y: hipY}, L1: l1, L2: l2},
		},
		StepOrder: append([]int(nil), cfg.Gait.Order...),
	}
	for i := range skel.Legs {
		skel.Legs[i].BendRight = skel.Legs[i].HipOffset.X > 0
		skel.Legs[i].Foot = systems.IdealFootPosition(geom.Vec2{}, geom.Vec2{}, &skel, i, gait.Lead)
	}
	systems.SolveSkeleton(geom.Vec2{}, &skel)
	return skel
}

func main() {
	if err := config.Init(""); err != nil {
		panic(err)
	}
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Skin Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	values := defaultValues(cfg)

	gait := components.Gait{
		TriggerDistance: float32(cfg.Gait.TriggerDistance),
		DurationTicks:   float32(cfg.Gait.DurationTicks),
		Height:          float32(cfg.Gait.Height),
		Lead:            float32(cfg.Gait.Lead),
	}
	skel := testSkeleton(cfg, &gait)

	// Walk state for animated mode
	var angle float64
	core := geom.Vec2{}
	animating := false

	extractor := skin.Extractor{}
	var grid skin.Grid
	var segments []skin.Segment
	var influences []skin.Influence

	params := componentsFromValues(values)
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			angle += walkSpeed
			prev := core
			core = geom.Vec2{
				X: float32(math.Cos(angle)) * walkRadius,
				Y: float32(math.Sin(angle)) * walkRadius,
			}
			vel := core.Sub(prev)

			systems.StepSkeleton(core, vel, &skel, &gait)
			systems.SolveSkeleton(core, &skel)
			needsRegen = true
		}

		if needsRegen {
			extractor.Iso = values.Iso
			extractor.CellSize = values.CellSize
			extractor.Padding = values.Padding
			params = componentsFromValues(values)

			influences = skin.CollectInfluences(core, &skel, &params, influences)
			segments = extractor.Extract(influences, &grid, segments)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 18, G: 18, B: 24, A: 255})

		drawPreview(core, &skel, &grid, segments)

		// Stats under the preview
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Segments: %d  Vertices: %d", len(segments), len(segments)*2), 15, statsY, 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d cells (%d samples)", grid.Cols, grid.Rows, (grid.Cols+1)*(grid.Rows+1)), 15, statsY+20, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Skin Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		needsRegen = slider(panelX, &panelY, "Iso (field threshold)", &values.Iso, 0.05, 0.95, "%.2f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Cell size (grid resolution)", &values.CellSize, 2, 16, "%.1f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Padding (bounds margin)", &values.Padding, 0, 30, "%.0f") || needsRegen

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.DarkGray)
		panelY += 12

		needsRegen = slider(panelX, &panelY, "Core radius", &values.CoreRadius, 5, 80, "%.0f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Core weight", &values.CoreWeight, 0.1, 2, "%.2f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Hip radius", &values.HipRadius, 2, 50, "%.0f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Hip weight", &values.HipWeight, 0.1, 2, "%.2f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Knee radius", &values.KneeRadius, 2, 50, "%.0f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Knee weight", &values.KneeWeight, 0.1, 2, "%.2f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Foot radius", &values.FootRadius, 2, 50, "%.0f") || needsRegen
		needsRegen = slider(panelX, &panelY, "Foot weight", &values.FootWeight, 0.1, 2, "%.2f") || needsRegen

		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate Gait")) {
			animating = !animating
			if !animating {
				needsRegen = true
			}
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Pose") {
			angle = 0
			core = geom.Vec2{}
			skel = testSkeleton(cfg, &gait)
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			values = defaultValues(cfg)
			needsRegen = true
		}
		panelY += 45

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 22
		for _, line := range yamlLines(values) {
			rl.DrawText(line, int32(panelX), int32(panelY), 13, rl.Gray)
			panelY += 15
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-28), 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(values) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// componentsFromValues packs the slider values into the component form
// the collector expects.
func componentsFromValues(v SkinValues) components.SkinParams {
	return components.SkinParams{
		Core: components.JointParams{Radius: v.CoreRadius, Weight: v.CoreWeight},
		Hip:  components.JointParams{Radius: v.HipRadius, Weight: v.HipWeight},
		Knee: components.JointParams{Radius: v.KneeRadius, Weight: v.KneeWeight},
		Foot: components.JointParams{Radius: v.FootRadius, Weight: v.FootWeight},
	}
}

// drawPreview renders the skeleton and contour scaled to fit the preview
// viewport, centered on the sampling grid.
func drawPreview(core geom.Vec2, skel *components.Skeleton, grid *skin.Grid, segments []skin.Segment) {
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

	if grid.Cols == 0 || grid.Rows == 0 {
		rl.DrawText("no field", 10+previewSize/2-30, 10+previewSize/2, 16, rl.Gray)
		return
	}

	worldW := float32(grid.Cols) * grid.CellSize
	worldH := float32(grid.Rows) * grid.CellSize
	scale := float32(previewSize-40) / worldW
	if s := float32(previewSize-40) / worldH; s < scale {
		scale = s
	}
	offX := float32(10+previewSize/2) - (grid.OriginX+worldW/2)*scale
	offY := float32(10+previewSize/2) - (grid.OriginY+worldH/2)*scale

	toScreen := func(p geom.Vec2) rl.Vector2 {
		return rl.Vector2{X: offX + p.X*scale, Y: offY + p.Y*scale}
	}

	// Grid bounds
	o := toScreen(geom.Vec2{X: grid.OriginX, Y: grid.OriginY})
	rl.DrawRectangleLines(int32(o.X), int32(o.Y), int32(worldW*scale), int32(worldH*scale), rl.Color{R: 50, G: 60, B: 70, A: 255})

	// Skeleton under the contour
	boneColor := rl.Color{R: 110, G: 120, B: 130, A: 255}
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		hip := toScreen(core.Add(leg.HipOffset))
		knee := toScreen(leg.Knee)
		foot := toScreen(leg.Foot)
		rl.DrawLineV(hip, knee, boneColor)
		rl.DrawLineV(knee, foot, boneColor)
		rl.DrawCircleV(knee, 2, boneColor)
		footColor := boneColor
		if leg.Stepping() {
			footColor = rl.Yellow
		}
		rl.DrawCircleV(foot, 3, footColor)
	}
	rl.DrawCircleV(toScreen(core), 4, rl.Color{R: 160, G: 170, B: 180, A: 255})

	// Contour on top
	contourColor := rl.Color{R: 120, G: 220, B: 160, A: 255}
	for _, seg := range segments {
		rl.DrawLineEx(toScreen(seg.P0), toScreen(seg.P1), 2, contourColor)
	}
}

// slider draws one labelled slider row and reports whether it moved.
func slider(x float32, y *float32, label string, value *float32, minVal, maxVal float32, format string) bool {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 16
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 16},
		"", "",
		*value, minVal, maxVal,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(x+float32(panelWidth-70)), int32(*y), 16, rl.LightGray)
	*y += 22

	if next != *value {
		*value = next
		return true
	}
	return false
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// yamlLines formats the current values as a config fragment. Joints use
// flow style to keep the panel short.
func yamlLines(v SkinValues) []string {
	return []string{
		"skin:",
		fmt.Sprintf("  iso: %.2f", v.Iso),
		fmt.Sprintf("  cell_size: %.1f", v.CellSize),
		fmt.Sprintf("  padding: %.0f", v.Padding),
		fmt.Sprintf("  core: {radius: %.0f, weight: %.2f}", v.CoreRadius, v.CoreWeight),
		fmt.Sprintf("  hip: {radius: %.0f, weight: %.2f}", v.HipRadius, v.HipWeight),
		fmt.Sprintf("  knee: {radius: %.0f, weight: %.2f}", v.KneeRadius, v.KneeWeight),
		fmt.Sprintf("  foot: {radius: %.0f, weight: %.2f}", v.FootRadius, v.FootWeight),
	}
}

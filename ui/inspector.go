package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
	"github.com/pthm-cable/squirm/morph"
	"github.com/pthm-cable/squirm/telemetry"
)

// InspectorData holds all the data needed to render the inspector panel.
type InspectorData struct {
	Meta     *components.Meta
	Pos      geom.Vec2
	Vel      geom.Vec2
	Skeleton *components.Skeleton
	Gait     *components.Gait
	Skin     *components.SkinParams
	Lifetime *telemetry.LifetimeStats
}

// Inspector renders the creature inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns the panel's bottom edge.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	y := ins.y + padding

	panelHeight := int32(640)

	// Draw panel background
	r.DrawPanel(ins.x, ins.y, ins.width, panelHeight)

	// Content width
	contentWidth := ins.width - padding*2

	y = ins.drawSkeletonPreview(ins.x+padding, y, contentWidth, 110, data)
	y = r.DrawSpacer(y, 8)

	y = ins.drawHeader(ins.x+padding, y, data)
	y = r.DrawSpacer(y, 6)

	y = ins.drawStateSection(ins.x+padding, y, data, contentWidth)
	y = ins.drawGaitSection(ins.x+padding, y, data, contentWidth)
	y = ins.drawLegsSection(ins.x+padding, y, data, contentWidth)
	y = ins.drawSkinSection(ins.x+padding, y, data, contentWidth)

	if data.Lifetime != nil {
		ins.drawLifetimeSection(ins.x+padding, y, data, contentWidth)
	}

	return ins.y + panelHeight
}

// drawSkeletonPreview renders a scaled top-down view of the skeleton.
func (ins *Inspector) drawSkeletonPreview(x, y, width, height int32, data InspectorData) int32 {
	// Draw background
	rl.DrawRectangle(x, y, width, height, rl.Color{R: 25, G: 30, B: 35, A: 255})
	rl.DrawRectangleLinesEx(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(height)}, 1, rl.Color{R: 50, G: 60, B: 70, A: 255})

	skel := data.Skeleton
	if skel == nil || len(skel.Legs) == 0 {
		return y + height
	}

	// Bounding box over core, knees and feet in core-relative coordinates
	core := data.Pos
	minX, minY := float32(0), float32(0)
	maxX, maxY := float32(0), float32(0)
	include := func(p geom.Vec2) {
		rx, ry := p.X-core.X, p.Y-core.Y
		if rx < minX {
			minX = rx
		}
		if rx > maxX {
			maxX = rx
		}
		if ry < minY {
			minY = ry
		}
		if ry > maxY {
			maxY = ry
		}
	}
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		include(core.Add(leg.HipOffset))
		include(leg.Knee)
		include(leg.Foot)
	}

	// Scale to fit while maintaining aspect ratio
	pad := float32(12)
	availW := float32(width) - pad*2
	availH := float32(height) - pad*2
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX < 1 {
		spanX = 1
	}
	if spanY < 1 {
		spanY = 1
	}
	scale := availW / spanX
	if availH/spanY < scale {
		scale = availH / spanY
	}

	offX := float32(x) + pad + (availW-spanX*scale)/2 - minX*scale
	offY := float32(y) + pad + (availH-spanY*scale)/2 - minY*scale
	toScreen := func(p geom.Vec2) (int32, int32) {
		return int32(offX + (p.X-core.X)*scale), int32(offY + (p.Y-core.Y)*scale)
	}

	tint := rl.Color{R: data.Meta.TintR, G: data.Meta.TintG, B: data.Meta.TintB, A: 255}
	boneColor := rl.Color{R: 160, G: 170, B: 180, A: 255}

	for i := range skel.Legs {
		leg := &skel.Legs[i]
		hx, hy := toScreen(core.Add(leg.HipOffset))
		kx, ky := toScreen(leg.Knee)
		fx, fy := toScreen(leg.Foot)

		rl.DrawLine(hx, hy, kx, ky, boneColor)
		rl.DrawLine(kx, ky, fx, fy, boneColor)
		rl.DrawCircle(kx, ky, 2, boneColor)

		footColor := tint
		if leg.Stepping() {
			footColor = rl.Yellow
		}
		rl.DrawCircle(fx, fy, 3, footColor)
	}

	cx, cy := toScreen(core)
	rl.DrawCircle(cx, cy, 4, tint)

	return y + height
}

// drawHeader renders the creature name and variant.
func (ins *Inspector) drawHeader(x, y int32, data InspectorData) int32 {
	r := ins.renderer

	tint := rl.Color{R: data.Meta.TintR, G: data.Meta.TintG, B: data.Meta.TintB, A: 255}
	rl.DrawText(data.Meta.Name, x, y, 18, tint)

	label := variantLabel(data.Meta.Variant)
	labelWidth := rl.MeasureText(data.Meta.Name, 18)
	rl.DrawText(label, x+labelWidth+10, y+4, r.Theme.FontSize, r.Theme.LabelColor)

	return y + r.Theme.LineHeight + 6
}

// drawStateSection renders position and motion values.
func (ins *Inspector) drawStateSection(x, y int32, data InspectorData, width int32) int32 {
	r := ins.renderer

	y = r.DrawSectionHeader(x, y, "State")
	y = r.DrawLabelValue(x, y, "Pos", fmt.Sprintf("%.0f, %.0f", data.Pos.X, data.Pos.Y), width)
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.2f /tick", data.Vel.Length()), width)

	return y + 6
}

// drawGaitSection renders gait tuning using descriptors.
func (ins *Inspector) drawGaitSection(x, y int32, data InspectorData, width int32) int32 {
	r := ins.renderer

	y = r.DrawSectionHeader(x, y, "Gait")

	for _, fd := range components.GaitFieldDescriptors() {
		value := components.GetGaitValue(data.Gait, fd.ID)
		if fd.IsBar {
			normalized := (value - fd.Min) / (fd.Max - fd.Min)
			y = r.DrawBar(x, y, fd.Label, normalized, width)
		} else {
			y = r.DrawLabelValue(x, y, fd.Label, fmt.Sprintf(fd.Format, value), width)
		}
	}

	next := data.Skeleton.NextLegIndex()
	y = r.DrawLabelValue(x, y, "Next Leg", data.Skeleton.Legs[next].ID, width)

	return y + 6
}

// drawLegsSection renders per-leg swing state.
func (ins *Inspector) drawLegsSection(x, y int32, data InspectorData, width int32) int32 {
	r := ins.renderer

	y = r.DrawSectionHeader(x, y, "Legs")

	for i := range data.Skeleton.Legs {
		leg := &data.Skeleton.Legs[i]
		label := leg.ID
		if leg.Stepping() {
			y = r.DrawBar(x, y, label, leg.Step.Progress, width)
		} else {
			y = r.DrawLabelValue(x, y, label, "planted", width)
		}
	}

	return y + 6
}

// drawSkinSection renders metaball sizing using descriptors.
func (ins *Inspector) drawSkinSection(x, y int32, data InspectorData, width int32) int32 {
	r := ins.renderer

	y = r.DrawSectionHeader(x, y, "Skin")

	for _, fd := range components.SkinFieldDescriptors() {
		value := components.GetSkinValue(data.Skin, fd.ID)
		if fd.IsBar {
			normalized := (value - fd.Min) / (fd.Max - fd.Min)
			y = r.DrawBar(x, y, fd.Label, normalized, width)
		} else {
			y = r.DrawLabelValue(x, y, fd.Label, fmt.Sprintf(fd.Format, value), width)
		}
	}

	return y + 6
}

// drawLifetimeSection renders accumulated per-creature telemetry.
func (ins *Inspector) drawLifetimeSection(x, y int32, data InspectorData, width int32) int32 {
	r := ins.renderer
	lt := data.Lifetime

	y = r.DrawSectionHeader(x, y, "Lifetime")
	y = r.DrawLabelValue(x, y, "Alive", fmt.Sprintf("%.1fs", lt.AliveSec), width)
	y = r.DrawLabelValue(x, y, "Steps", fmt.Sprintf("%d / %d", lt.StepsCompleted, lt.StepsStarted), width)
	y = r.DrawLabelValue(x, y, "Traveled", fmt.Sprintf("%.0f", lt.DistanceTraveled), width)
	y = r.DrawLabelValue(x, y, "Stretch", fmt.Sprintf("%.2fx max", lt.MaxStretchRatio), width)
	y = r.DrawLabelValue(x, y, "Clamps", fmt.Sprintf("%d", lt.StretchClamps), width)

	return y
}

// variantLabel returns a display label for a morph variant.
func variantLabel(v morph.Variant) string {
	names := morph.Names(v)
	if len(names) == 0 {
		return "plain"
	}
	return strings.Join(names, "+")
}

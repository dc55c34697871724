package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TunerState holds the live-editable parameters shown in the tuner panel.
// Skin sampling values apply to every creature; gait values apply to the
// selected creature.
type TunerState struct {
	Iso      float32
	CellSize float32
	Padding  float32

	TriggerDistance float32
	DurationTicks   float32
	StepHeight      float32
	Lead            float32
}

// TunerPanel renders slider controls for live parameter tuning.
type TunerPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewTunerPanel creates a new tuner panel.
func NewTunerPanel(x, y, width int32) *TunerPanel {
	return &TunerPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// SetPosition updates the panel position.
func (t *TunerPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// IsVisible returns whether the panel is shown.
func (t *TunerPanel) IsVisible() bool {
	return t.visible
}

// Toggle switches panel visibility.
func (t *TunerPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// Draw renders the tuner and mutates state through the sliders.
// Returns (changed, reset): changed when any slider moved this frame,
// reset when the reset button was clicked.
func (t *TunerPanel) Draw(state *TunerState, hasSelection bool) (bool, bool) {
	if !t.visible {
		return false, false
	}

	r := t.renderer
	padding := r.Theme.Padding

	sliderRows := 3
	if hasSelection {
		sliderRows += 4
	}
	panelHeight := int32(60) + int32(sliderRows)*38 + 50

	r.DrawPanel(t.x, t.y, t.width, panelHeight)

	x := t.x + padding
	y := t.y + padding
	changed := false

	rl.DrawText("Tuner", x, y, 16, rl.White)
	y += 24

	y = r.DrawSectionHeader(x, y, "Skin (all creatures)")
	changed = t.slider(x, &y, "Iso", &state.Iso, 0.05, 0.95, "%.2f") || changed
	changed = t.slider(x, &y, "Cell Size", &state.CellSize, 2, 16, "%.1f") || changed
	changed = t.slider(x, &y, "Padding", &state.Padding, 0, 30, "%.0f") || changed

	if hasSelection {
		y += 4
		y = r.DrawSectionHeader(x, y, "Gait (selected)")
		changed = t.slider(x, &y, "Trigger", &state.TriggerDistance, 4, 60, "%.1f") || changed
		changed = t.slider(x, &y, "Duration", &state.DurationTicks, 4, 40, "%.0f") || changed
		changed = t.slider(x, &y, "Height", &state.StepHeight, 0, 40, "%.1f") || changed
		changed = t.slider(x, &y, "Lead", &state.Lead, 0, 30, "%.1f") || changed
	}

	y += 8
	reset := gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 110, Height: 26}, "Reset Defaults")

	return changed, reset
}

// slider draws one labelled slider row and reports whether it moved.
func (t *TunerPanel) slider(x int32, y *int32, label string, value *float32, minVal, maxVal float32, format string) bool {
	r := t.renderer

	rl.DrawText(label, x, *y, r.Theme.FontSize, r.Theme.LabelColor)
	*y += 14

	barWidth := float32(t.width) - float32(r.Theme.Padding)*2 - 54
	next := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(*y), Width: barWidth, Height: 16},
		"", "",
		*value, minVal, maxVal,
	)
	rl.DrawText(fmt.Sprintf(format, *value), x+int32(barWidth)+8, *y+2, r.Theme.FontSize, r.Theme.ValueColor)
	*y += 24

	if next != *value {
		*value = next
		return true
	}
	return false
}

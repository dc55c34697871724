package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// pickRadius is the maximum click distance in screen pixels.
const pickRadius = float32(20.0)

// handleSelectionClick picks the creature nearest the cursor on left click.
// Clicking empty space clears the selection.
func (g *Game) handleSelectionClick() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mousePos := rl.GetMousePosition()
	if g.mouseOverUI(mousePos.X, mousePos.Y) {
		return
	}

	entity, found := g.findCreatureAt(mousePos.X, mousePos.Y)
	if !found {
		g.hasSelected = false
		g.following = false
		return
	}

	g.selected = entity
	g.hasSelected = true
	g.syncTunerSelection()
}

// findCreatureAt returns the creature whose core is nearest the given
// screen position, if any is within pickRadius.
func (g *Game) findCreatureAt(mouseX, mouseY float32) (ecs.Entity, bool) {
	var closestEntity ecs.Entity
	closestDistSq := pickRadius * pickRadius
	found := false

	query := g.creatureFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, _, _, _, _ := query.Get()

		sx, sy := g.camera.WorldToScreen(pos.X, pos.Y)
		dx := mouseX - sx
		dy := mouseY - sy
		distSq := dx*dx + dy*dy

		if distSq < closestDistSq {
			closestDistSq = distSq
			closestEntity = entity
			found = true
		}
	}

	return closestEntity, found
}

// mouseOverUI reports whether the cursor sits over a visible panel, so
// clicks on sliders and buttons do not change the selection.
func (g *Game) mouseOverUI(mx, my float32) bool {
	// Right-hand column: inspector and tuner
	rightEdge := g.screenWidth - float32(inspectorWidth+panelMargin)
	if mx >= rightEdge && (g.hasSelected || g.tunerPanel.IsVisible()) {
		return true
	}

	// Left-hand column: controls and quick stats
	leftEdge := float32(sidePanelWidth + panelMargin)
	if mx <= leftEdge && my >= float32(panelMargin) && g.controlsPanel.IsVisible() {
		return true
	}

	return false
}

// syncTunerSelection loads the selected creature's gait values into the
// tuner so its sliders start from the creature's current state.
func (g *Game) syncTunerSelection() {
	gait := g.gaitMap.Get(g.selected)
	if gait == nil {
		return
	}
	g.tunerState.TriggerDistance = gait.TriggerDistance
	g.tunerState.DurationTicks = gait.DurationTicks
	g.tunerState.StepHeight = gait.Height
	g.tunerState.Lead = gait.Lead
}

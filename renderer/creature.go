package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squirm/camera"
	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
	"github.com/pthm-cable/squirm/skin"
	"github.com/pthm-cable/squirm/systems"
)

const (
	// echoShrink scales the second contour pass toward the silhouette
	// center for the layered-outline look.
	echoShrink = 0.84

	// arcSamples is the polyline resolution of the step arc overlay.
	arcSamples = 16
)

// CreatureRenderer draws creature bodies and the per-creature overlays.
type CreatureRenderer struct {
	boneColor   rl.Color
	jointColor  rl.Color
	plantColor  rl.Color
	swingColor  rl.Color
	idealColor  rl.Color
	triggerTint rl.Color
}

// NewCreatureRenderer creates a creature renderer with the default palette.
func NewCreatureRenderer() *CreatureRenderer {
	return &CreatureRenderer{
		boneColor:   rl.Color{R: 150, G: 160, B: 170, A: 220},
		jointColor:  rl.Color{R: 200, G: 210, B: 220, A: 255},
		plantColor:  rl.Color{R: 110, G: 200, B: 110, A: 255},
		swingColor:  rl.Color{R: 240, G: 210, B: 80, A: 255},
		idealColor:  rl.Color{R: 120, G: 160, B: 230, A: 200},
		triggerTint: rl.Color{R: 120, G: 160, B: 230, A: 70},
	}
}

// DrawContour strokes the outline segments in the body tint, with a dimmer
// echo pass shrunk toward the silhouette center.
func (r *CreatureRenderer) DrawContour(cam *camera.Camera, segments []skin.Segment, tintR, tintG, tintB uint8) {
	if len(segments) == 0 {
		return
	}

	thick := 2 * cam.Zoom
	if thick < 1 {
		thick = 1
	}
	if thick > 5 {
		thick = 5
	}

	main := rl.Color{R: tintR, G: tintG, B: tintB, A: 255}
	echo := rl.Color{R: tintR, G: tintG, B: tintB, A: 80}

	// Silhouette center for the echo pass
	var cx, cy float32
	for i := range segments {
		cx += segments[i].P0.X + segments[i].P1.X
		cy += segments[i].P0.Y + segments[i].P1.Y
	}
	n := float32(len(segments) * 2)
	cx /= n
	cy /= n

	for i := range segments {
		s := &segments[i]
		x0, y0 := cam.WorldToScreen(s.P0.X, s.P0.Y)
		x1, y1 := cam.WorldToScreen(s.P1.X, s.P1.Y)
		rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, thick, main)
	}

	for i := range segments {
		s := &segments[i]
		e0x := cx + (s.P0.X-cx)*echoShrink
		e0y := cy + (s.P0.Y-cy)*echoShrink
		e1x := cx + (s.P1.X-cx)*echoShrink
		e1y := cy + (s.P1.Y-cy)*echoShrink
		x0, y0 := cam.WorldToScreen(e0x, e0y)
		x1, y1 := cam.WorldToScreen(e1x, e1y)
		rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, 1, echo)
	}
}

// DrawSkeleton draws the bone chains and joints of one creature.
func (r *CreatureRenderer) DrawSkeleton(cam *camera.Camera, core geom.Vec2, skel *components.Skeleton, tintR, tintG, tintB uint8) {
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		hip := core.Add(leg.HipOffset)

		hx, hy := cam.WorldToScreen(hip.X, hip.Y)
		kx, ky := cam.WorldToScreen(leg.Knee.X, leg.Knee.Y)
		fx, fy := cam.WorldToScreen(leg.Foot.X, leg.Foot.Y)

		rl.DrawLineEx(rl.Vector2{X: hx, Y: hy}, rl.Vector2{X: kx, Y: ky}, 1.5, r.boneColor)
		rl.DrawLineEx(rl.Vector2{X: kx, Y: ky}, rl.Vector2{X: fx, Y: fy}, 1.5, r.boneColor)

		rl.DrawCircle(int32(hx), int32(hy), 2.5*cam.Zoom, r.jointColor)
		rl.DrawCircle(int32(kx), int32(ky), 2*cam.Zoom, r.jointColor)
	}

	cx, cy := cam.WorldToScreen(core.X, core.Y)
	rl.DrawCircle(int32(cx), int32(cy), 3.5*cam.Zoom, rl.Color{R: tintR, G: tintG, B: tintB, A: 255})
}

// DrawFootTargets marks each foot, the swing target of any active swing,
// the per-leg ideal position, and the trigger radius around the leg the
// scheduler inspects next.
func (r *CreatureRenderer) DrawFootTargets(cam *camera.Camera, core, vel geom.Vec2, skel *components.Skeleton, gait *components.Gait) {
	next := skel.NextLegIndex()

	for i := range skel.Legs {
		leg := &skel.Legs[i]

		ideal := systems.IdealFootPosition(core, vel, skel, i, gait.Lead)
		ix, iy := cam.WorldToScreen(ideal.X, ideal.Y)
		cross := 3 * cam.Zoom
		rl.DrawLineEx(rl.Vector2{X: ix - cross, Y: iy}, rl.Vector2{X: ix + cross, Y: iy}, 1, r.idealColor)
		rl.DrawLineEx(rl.Vector2{X: ix, Y: iy - cross}, rl.Vector2{X: ix, Y: iy + cross}, 1, r.idealColor)

		if i == next {
			rl.DrawCircleLines(int32(ix), int32(iy), gait.TriggerDistance*cam.Zoom, r.triggerTint)
		}

		fx, fy := cam.WorldToScreen(leg.Foot.X, leg.Foot.Y)
		if leg.Stepping() {
			rl.DrawCircle(int32(fx), int32(fy), 3*cam.Zoom, r.swingColor)
			tx, ty := cam.WorldToScreen(leg.Step.Target.X, leg.Step.Target.Y)
			rl.DrawCircleLines(int32(tx), int32(ty), 4*cam.Zoom, r.swingColor)
		} else {
			rl.DrawCircle(int32(fx), int32(fy), 3*cam.Zoom, r.plantColor)
		}
	}
}

// DrawStepArcs traces the lift path of every active swing.
func (r *CreatureRenderer) DrawStepArcs(cam *camera.Camera, skel *components.Skeleton, gait *components.Gait) {
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		if !leg.Stepping() {
			continue
		}

		prev := leg.Step.Start
		for s := 1; s <= arcSamples; s++ {
			t := float32(s) / arcSamples
			p := systems.SwingPoint(leg.Step.Start, leg.Step.Target, t, gait.Height)

			color := r.swingColor
			if t > leg.Step.Progress {
				color.A = 90
			}

			x0, y0 := cam.WorldToScreen(prev.X, prev.Y)
			x1, y1 := cam.WorldToScreen(p.X, p.Y)
			rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, 1, color)
			prev = p
		}
	}
}

// DrawGridBounds outlines the sampling grid of the last extraction.
func (r *CreatureRenderer) DrawGridBounds(cam *camera.Camera, grid *skin.Grid) {
	if grid.Cols == 0 || grid.Rows == 0 {
		return
	}
	x0, y0 := cam.WorldToScreen(grid.OriginX, grid.OriginY)
	x1, y1 := cam.WorldToScreen(
		grid.OriginX+float32(grid.Cols)*grid.CellSize,
		grid.OriginY+float32(grid.Rows)*grid.CellSize,
	)
	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), rl.Color{R: 90, G: 100, B: 110, A: 160})
}

// DrawFieldHeat shades each grid cell by its mean field value. Cells below
// the threshold cool toward blue, cells above it glow warm.
func (r *CreatureRenderer) DrawFieldHeat(cam *camera.Camera, grid *skin.Grid, iso float32) {
	if grid.Cols == 0 || grid.Rows == 0 || iso <= 0 {
		return
	}
	for j := 0; j < grid.Rows; j++ {
		for i := 0; i < grid.Cols; i++ {
			avg := (grid.At(i, j) + grid.At(i+1, j) + grid.At(i+1, j+1) + grid.At(i, j+1)) / 4
			if avg < 0.01 {
				continue
			}

			rel := avg / iso
			alpha := rel * 110
			if alpha > 190 {
				alpha = 190
			}
			color := rl.Color{R: 50, G: 90, B: 170, A: uint8(alpha)}
			if rel >= 1 {
				color = rl.Color{R: 220, G: 140, B: 60, A: uint8(alpha)}
			}

			p := grid.VertexPos(i, j)
			x0, y0 := cam.WorldToScreen(p.X, p.Y)
			size := grid.CellSize * cam.Zoom
			rl.DrawRectangle(int32(x0), int32(y0), int32(size)+1, int32(size)+1, color)
		}
	}
}

// DrawFieldDots marks grid vertices, filled when at or above the
// threshold and hollow when below.
func (r *CreatureRenderer) DrawFieldDots(cam *camera.Camera, grid *skin.Grid, iso float32) {
	if grid.Cols == 0 || grid.Rows == 0 {
		return
	}
	for j := 0; j <= grid.Rows; j++ {
		for i := 0; i <= grid.Cols; i++ {
			v := grid.At(i, j)
			if v < iso/4 {
				continue
			}
			p := grid.VertexPos(i, j)
			sx, sy := cam.WorldToScreen(p.X, p.Y)
			if v >= iso {
				rl.DrawCircle(int32(sx), int32(sy), 2, rl.Color{R: 220, G: 140, B: 60, A: 230})
			} else {
				rl.DrawCircleLines(int32(sx), int32(sy), 2, rl.Color{R: 60, G: 100, B: 180, A: 180})
			}
		}
	}
}

// DrawSelection draws a pulsing ring around the selected creature.
func (r *CreatureRenderer) DrawSelection(cam *camera.Camera, core geom.Vec2, radius float32, tick int64) {
	pulse := float32(math.Sin(float64(tick)*0.1))*0.3 + 0.7
	alpha := uint8(255 * pulse)

	cx, cy := cam.WorldToScreen(core.X, core.Y)
	sr := radius * cam.Zoom
	rl.DrawCircleLines(int32(cx), int32(cy), sr, rl.Color{R: 255, G: 255, B: 255, A: alpha})
	rl.DrawCircleLines(int32(cx), int32(cy), sr+1, rl.Color{R: 255, G: 255, B: 255, A: alpha / 2})
}

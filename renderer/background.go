// Package renderer draws the world and creatures with raylib primitives.
// All draw calls go through the camera's world-to-screen transform so the
// same passes serve any pan and zoom.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squirm/camera"
)

// dotSpacing is the world-unit pitch of the floor reference dots.
const dotSpacing float32 = 80

// BackgroundRenderer fills the backdrop and marks the world bounds.
type BackgroundRenderer struct {
	backdrop rl.Color
	floor    rl.Color
	border   rl.Color
	dot      rl.Color
}

// NewBackgroundRenderer creates a background renderer with the default
// palette.
func NewBackgroundRenderer() *BackgroundRenderer {
	return &BackgroundRenderer{
		backdrop: rl.Color{R: 12, G: 14, B: 18, A: 255},
		floor:    rl.Color{R: 22, G: 26, B: 32, A: 255},
		border:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		dot:      rl.Color{R: 45, G: 52, B: 60, A: 255},
	}
}

// Draw clears the frame and draws the world floor, reference dots and
// bounds.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.backdrop)

	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(cam.WorldW, cam.WorldH)
	rl.DrawRectangle(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), b.floor)

	// Reference dots, culled to the visible region
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	startX := float32(int(minX/dotSpacing)) * dotSpacing
	if startX < dotSpacing {
		startX = dotSpacing
	}
	startY := float32(int(minY/dotSpacing)) * dotSpacing
	if startY < dotSpacing {
		startY = dotSpacing
	}
	for wy := startY; wy < cam.WorldH && wy <= maxY; wy += dotSpacing {
		for wx := startX; wx < cam.WorldW && wx <= maxX; wx += dotSpacing {
			sx, sy := cam.WorldToScreen(wx, wy)
			rl.DrawCircle(int32(sx), int32(sy), 1.5, b.dot)
		}
	}

	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), b.border)
}

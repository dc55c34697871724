// Contour snapshot tool - runs a deterministic headless pose and writes
// the extracted creature outlines to SVG or PNG.
//
// The same seed and warmup always produce the same pose, so exported
// files are diffable across code changes.
//
// Usage: go run ./cmd/contoursnap -seed 42 -warmup 600 -out pose.svg
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/config"
	"github.com/pthm-cable/squirm/game"
	"github.com/pthm-cable/squirm/skin"
)

// contour holds one creature's outline with its display tint.
type contour struct {
	name     string
	r, g, b  uint8
	segments []skin.Segment
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 42, "RNG seed for the deterministic pose")
	warmup := flag.Int64("warmup", 600, "Ticks to simulate before the snapshot")
	outPath := flag.String("out", "pose.svg", "Output path (.svg or .png)")
	width := flag.Int("width", 1280, "PNG render width (height follows the world aspect)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	g := game.NewGameWithOptions(game.Options{
		Seed:     *seed,
		Headless: true,
	})
	defer g.Unload()

	for g.Tick() < *warmup {
		g.UpdateHeadless()
	}

	g.ExtractContours()

	var contours []contour
	total := 0
	g.ForEachContour(func(meta *components.Meta, segments []skin.Segment) {
		segs := append([]skin.Segment(nil), segments...)
		contours = append(contours, contour{
			name:     meta.Name,
			r:        meta.TintR,
			g:        meta.TintG,
			b:        meta.TintB,
			segments: segs,
		})
		total += len(segs)
	})

	worldW, worldH := g.WorldSize()

	var err error
	switch strings.ToLower(filepath.Ext(*outPath)) {
	case ".svg":
		err = writeSVG(*outPath, contours, worldW, worldH)
	case ".png":
		err = writePNG(*outPath, contours, worldW, worldH, *width)
	default:
		err = fmt.Errorf("unsupported extension %q, want .svg or .png", filepath.Ext(*outPath))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d creatures, %d segments at tick %d\n", *outPath, len(contours), total, g.Tick())
}

// writeSVG renders the contours as one path element per creature, in
// world coordinates via the viewBox.
func writeSVG(path string, contours []contour, worldW, worldH float32) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %.0f %.0f\">\n", worldW, worldH)
	sb.WriteString("  <rect width=\"100%\" height=\"100%\" fill=\"#12121a\"/>\n")

	for _, c := range contours {
		if len(c.segments) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "  <!-- %s -->\n", c.name)
		fmt.Fprintf(&sb, "  <path stroke=\"rgb(%d,%d,%d)\" stroke-width=\"2\" fill=\"none\" d=\"", c.r, c.g, c.b)
		for _, seg := range c.segments {
			fmt.Fprintf(&sb, "M%.1f %.1fL%.1f %.1f", seg.P0.X, seg.P0.Y, seg.P1.X, seg.P1.Y)
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</svg>\n")

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// writePNG rasterizes the contours through a hidden raylib window and a
// render texture.
func writePNG(path string, contours []contour, worldW, worldH float32, width int) error {
	scale := float32(width) / worldW
	height := int(worldH * scale)

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(width), int32(height), "Contour Snapshot")
	defer rl.CloseWindow()

	target := rl.LoadRenderTexture(int32(width), int32(height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Color{R: 18, G: 18, B: 24, A: 255})
	for _, c := range contours {
		col := rl.Color{R: c.r, G: c.g, B: c.b, A: 255}
		for _, seg := range c.segments {
			rl.DrawLineEx(
				rl.Vector2{X: seg.P0.X * scale, Y: seg.P0.Y * scale},
				rl.Vector2{X: seg.P1.X * scale, Y: seg.P1.Y * scale},
				2, col,
			)
		}
	}
	rl.EndTextureMode()

	// Flip before export (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)

	if !rl.ExportImage(*img, path) {
		return fmt.Errorf("raylib could not write %s", path)
	}
	return nil
}

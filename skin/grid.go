package skin

import (
	"math"

	"github.com/pthm-cable/squirm/geom"
)

// Grid is the sampling lattice for one extraction: field values at
// (Cols+1) x (Rows+1) vertices laid over the padded influence bounds. A
// Grid may be reused frame to frame as scratch, but never shared between
// concurrent extractions; its bounds are only valid for the influence set
// it was last built from.
type Grid struct {
	OriginX  float32
	OriginY  float32
	CellSize float32
	Cols     int
	Rows     int
	Values   []float32 // row-major, (Cols+1)*(Rows+1)
}

// influenceBounds returns the AABB of all influences, each expanding the
// box by its own radius. ok is false for an empty set.
func influenceBounds(influences []Influence) (minX, minY, maxX, maxY float32, ok bool) {
	if len(influences) == 0 {
		return 0, 0, 0, 0, false
	}
	minX = float32(math.Inf(1))
	minY = float32(math.Inf(1))
	maxX = float32(math.Inf(-1))
	maxY = float32(math.Inf(-1))
	for i := range influences {
		in := &influences[i]
		if x := in.Pos.X - in.Radius; x < minX {
			minX = x
		}
		if y := in.Pos.Y - in.Radius; y < minY {
			minY = y
		}
		if x := in.Pos.X + in.Radius; x > maxX {
			maxX = x
		}
		if y := in.Pos.Y + in.Radius; y > maxY {
			maxY = y
		}
	}
	return minX, minY, maxX, maxY, true
}

// Build lays the grid over the padded bounds of the influences and samples
// the field at every vertex. The origin snaps down to the cellSize lattice
// so contours stay stable as the creature drifts within a cell. Returns
// false when the influence set is empty or the box spans no whole cell;
// the caller treats that as nothing to draw, not an error. A failed build
// leaves the grid with zero cells so reused grids never look stale.
func (g *Grid) Build(influences []Influence, cellSize, padding float32) bool {
	minX, minY, maxX, maxY, ok := influenceBounds(influences)
	if !ok {
		g.Cols, g.Rows = 0, 0
		return false
	}

	minX -= padding
	minY -= padding
	maxX += padding
	maxY += padding

	g.CellSize = cellSize
	g.OriginX = float32(math.Floor(float64(minX/cellSize))) * cellSize
	g.OriginY = float32(math.Floor(float64(minY/cellSize))) * cellSize
	g.Cols = int(math.Ceil(float64((maxX - g.OriginX) / cellSize)))
	g.Rows = int(math.Ceil(float64((maxY - g.OriginY) / cellSize)))
	if g.Cols <= 0 || g.Rows <= 0 {
		g.Cols, g.Rows = 0, 0
		return false
	}

	n := (g.Cols + 1) * (g.Rows + 1)
	if cap(g.Values) < n {
		g.Values = make([]float32, n)
	}
	g.Values = g.Values[:n]

	for j := 0; j <= g.Rows; j++ {
		y := g.OriginY + float32(j)*cellSize
		row := j * (g.Cols + 1)
		for i := 0; i <= g.Cols; i++ {
			x := g.OriginX + float32(i)*cellSize
			g.Values[row+i] = FieldValue(geom.Vec2{X: x, Y: y}, influences)
		}
	}
	return true
}

// At returns the sampled value at vertex column i, row j.
func (g *Grid) At(i, j int) float32 {
	return g.Values[j*(g.Cols+1)+i]
}

// VertexPos returns the world position of vertex (i, j).
func (g *Grid) VertexPos(i, j int) geom.Vec2 {
	return geom.Vec2{
		X: g.OriginX + float32(i)*g.CellSize,
		Y: g.OriginY + float32(j)*g.CellSize,
	}
}

package skin

import "github.com/pthm-cable/squirm/geom"

// Segment is one contour line piece in world space.
type Segment struct {
	P0, P1 geom.Vec2
}

// Extractor holds the sampling parameters for contour extraction.
type Extractor struct {
	CellSize float32
	Iso      float32
	Padding  float32
}

// Extract builds a grid over the influences and walks every cell, appending
// iso-crossing segments into out (reset and returned re-sliced). The grid
// is caller-owned scratch so parallel callers can each keep their own.
func (e *Extractor) Extract(influences []Influence, grid *Grid, out []Segment) []Segment {
	out = out[:0]
	if !grid.Build(influences, e.CellSize, e.Padding) {
		return out
	}
	for j := 0; j < grid.Rows; j++ {
		for i := 0; i < grid.Cols; i++ {
			out = appendCellSegments(grid, i, j, e.Iso, out)
		}
	}
	return out
}

// ExtractContours is the one-shot form with a fresh grid.
func ExtractContours(influences []Influence, cellSize, iso, padding float32) []Segment {
	e := Extractor{CellSize: cellSize, Iso: iso, Padding: padding}
	var grid Grid
	return e.Extract(influences, &grid, nil)
}

// crossPoint interpolates the iso crossing along the edge from vertex
// (i0,j0) to vertex (i1,j1). Only called for edges whose corner states
// differ, so the denominator is never zero.
func crossPoint(g *Grid, iso float32, i0, j0, i1, j1 int) geom.Vec2 {
	va := g.At(i0, j0)
	vb := g.At(i1, j1)
	t := (iso - va) / (vb - va)
	return geom.Lerp(g.VertexPos(i0, j0), g.VertexPos(i1, j1), t)
}

// appendCellSegments classifies cell (i,j) and appends its contour
// segments. Corners: v0=(i,j), v1=(i+1,j), v2=(i+1,j+1), v3=(i,j+1),
// with bit k set when corner vk >= iso. Edges are named
// for the grid rows: bottom joins v0-v1, right v1-v2, top v3-v2, left
// v0-v3. The ambiguous saddles 5 and 10 always emit the two-segment
// separate interpretation.
func appendCellSegments(g *Grid, i, j int, iso float32, out []Segment) []Segment {
	v0 := g.At(i, j)
	v1 := g.At(i+1, j)
	v2 := g.At(i+1, j+1)
	v3 := g.At(i, j+1)

	var idx uint8
	if v0 >= iso {
		idx |= 1
	}
	if v1 >= iso {
		idx |= 2
	}
	if v2 >= iso {
		idx |= 4
	}
	if v3 >= iso {
		idx |= 8
	}

	switch idx {
	case 0, 15:
		// fully outside or inside, no crossing
	case 1:
		out = append(out, Segment{crossPoint(g, iso, i, j, i+1, j), crossPoint(g, iso, i, j, i, j+1)})
	case 2:
		out = append(out, Segment{crossPoint(g, iso, i, j, i+1, j), crossPoint(g, iso, i+1, j, i+1, j+1)})
	case 3:
		out = append(out, Segment{crossPoint(g, iso, i, j, i, j+1), crossPoint(g, iso, i+1, j, i+1, j+1)})
	case 4:
		out = append(out, Segment{crossPoint(g, iso, i+1, j, i+1, j+1), crossPoint(g, iso, i, j+1, i+1, j+1)})
	case 5:
		out = append(out,
			Segment{crossPoint(g, iso, i, j, i, j+1), crossPoint(g, iso, i, j, i+1, j)},
			Segment{crossPoint(g, iso, i+1, j, i+1, j+1), crossPoint(g, iso, i, j+1, i+1, j+1)})
	case 6:
		out = append(out, Segment{crossPoint(g, iso, i, j, i+1, j), crossPoint(g, iso, i, j+1, i+1, j+1)})
	case 7:
		out = append(out, Segment{crossPoint(g, iso, i, j, i, j+1), crossPoint(g, iso, i, j+1, i+1, j+1)})
	case 8:
		out = append(out, Segment{crossPoint(g, iso, i, j+1, i+1, j+1), crossPoint(g, iso, i, j, i, j+1)})
	case 9:
		out = append(out, Segment{crossPoint(g, iso, i, j, i+1, j), crossPoint(g, iso, i, j+1, i+1, j+1)})
	case 10:
		out = append(out,
			Segment{crossPoint(g, iso, i, j, i+1, j), crossPoint(g, iso, i+1, j, i+1, j+1)},
			Segment{crossPoint(g, iso, i, j+1, i+1, j+1), crossPoint(g, iso, i, j, i, j+1)})
	case 11:
		out = append(out, Segment{crossPoint(g, iso, i+1, j, i+1, j+1), crossPoint(g, iso, i, j+1, i+1, j+1)})
	case 12:
		out = append(out, Segment{crossPoint(g, iso, i, j, i, j+1), crossPoint(g, iso, i+1, j, i+1, j+1)})
	case 13:
		out = append(out, Segment{crossPoint(g, iso, i, j, i+1, j), crossPoint(g, iso, i+1, j, i+1, j+1)})
	case 14:
		out = append(out, Segment{crossPoint(g, iso, i, j, i+1, j), crossPoint(g, iso, i, j, i, j+1)})
	}
	return out
}

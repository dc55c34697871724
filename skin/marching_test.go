package skin

import (
	"math"
	"testing"

	"github.com/pthm-cable/squirm/geom"
)

func vecApprox(a, b geom.Vec2, tol float32) bool {
	return math.Abs(float64(a.X-b.X)) <= float64(tol) &&
		math.Abs(float64(a.Y-b.Y)) <= float64(tol)
}

// segMatch treats a segment's endpoints as unordered.
func segMatch(got, want Segment, tol float32) bool {
	return (vecApprox(got.P0, want.P0, tol) && vecApprox(got.P1, want.P1, tol)) ||
		(vecApprox(got.P0, want.P1, tol) && vecApprox(got.P1, want.P0, tol))
}

// unitCellGrid builds a single-cell grid with the given corner values in
// v0 (bottom-left), v1 (bottom-right), v2 (top-right), v3 (top-left) order.
func unitCellGrid(v0, v1, v2, v3 float32) *Grid {
	return &Grid{
		CellSize: 1,
		Cols:     1,
		Rows:     1,
		Values:   []float32{v0, v1, v3, v2}, // row-major: row 0 then row 1
	}
}

func TestCellCaseTable(t *testing.T) {
	// With inside=1, outside=0 and iso=0.5 every crossing sits on an edge
	// midpoint.
	bottom := geom.Vec2{X: 0.5, Y: 0}
	right := geom.Vec2{X: 1, Y: 0.5}
	top := geom.Vec2{X: 0.5, Y: 1}
	left := geom.Vec2{X: 0, Y: 0.5}

	tests := []struct {
		idx  uint8
		want []Segment
	}{
		{0, nil},
		{1, []Segment{{bottom, left}}},
		{2, []Segment{{bottom, right}}},
		{3, []Segment{{left, right}}},
		{4, []Segment{{right, top}}},
		{5, []Segment{{left, bottom}, {right, top}}},
		{6, []Segment{{bottom, top}}},
		{7, []Segment{{left, top}}},
		{8, []Segment{{top, left}}},
		{9, []Segment{{bottom, top}}},
		{10, []Segment{{bottom, right}, {top, left}}},
		{11, []Segment{{right, top}}},
		{12, []Segment{{left, right}}},
		{13, []Segment{{bottom, right}}},
		{14, []Segment{{bottom, left}}},
		{15, nil},
	}

	corner := func(idx uint8, bit uint8) float32 {
		if idx&bit != 0 {
			return 1
		}
		return 0
	}

	for _, tc := range tests {
		g := unitCellGrid(corner(tc.idx, 1), corner(tc.idx, 2), corner(tc.idx, 4), corner(tc.idx, 8))
		got := appendCellSegments(g, 0, 0, 0.5, nil)

		if len(got) != len(tc.want) {
			t.Errorf("case %d: %d segments, want %d", tc.idx, len(got), len(tc.want))
			continue
		}
		for _, w := range tc.want {
			found := false
			for _, s := range got {
				if segMatch(s, w, 1e-6) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("case %d: missing segment %+v in %+v", tc.idx, w, got)
			}
		}
	}
}

func TestCrossingInterpolation(t *testing.T) {
	// v0,v3 below, v1,v2 above: case 6, one bottom-to-top segment. The
	// crossing fraction is (0.5-0.4)/(0.9-0.4) = 0.2 along both edges.
	g := unitCellGrid(0.4, 0.9, 0.9, 0.4)
	got := appendCellSegments(g, 0, 0, 0.5, nil)

	if len(got) != 1 {
		t.Fatalf("got %d segments, want 1", len(got))
	}
	want := Segment{geom.Vec2{X: 0.2, Y: 0}, geom.Vec2{X: 0.2, Y: 1}}
	if !segMatch(got[0], want, 1e-6) {
		t.Errorf("segment = %+v, want %+v", got[0], want)
	}
}

func TestGridBuildSnapAndCoverage(t *testing.T) {
	in := []Influence{{Pos: geom.Vec2{X: 13.3, Y: 7.7}, Radius: 10, Weight: 1}}

	var g Grid
	if !g.Build(in, 4, 5) {
		t.Fatal("Build returned false for a valid influence")
	}

	if g.OriginX != -4 || g.OriginY != -8 {
		t.Errorf("origin = (%v, %v), want (-4, -8)", g.OriginX, g.OriginY)
	}
	if g.Cols != 9 || g.Rows != 8 {
		t.Errorf("cols/rows = %d/%d, want 9/8", g.Cols, g.Rows)
	}
	if len(g.Values) != (g.Cols+1)*(g.Rows+1) {
		t.Errorf("values length = %d, want %d", len(g.Values), (g.Cols+1)*(g.Rows+1))
	}

	// Padded bounds must sit inside the grid.
	maxX := g.OriginX + float32(g.Cols)*g.CellSize
	maxY := g.OriginY + float32(g.Rows)*g.CellSize
	if maxX < 13.3+15 || maxY < 7.7+15 {
		t.Errorf("grid max (%v, %v) does not cover padded bounds", maxX, maxY)
	}
}

func TestGridVertexValues(t *testing.T) {
	in := []Influence{{Pos: geom.Vec2{X: 0, Y: 0}, Radius: 12, Weight: 1}}
	var g Grid
	if !g.Build(in, 3, 0) {
		t.Fatal("Build failed")
	}
	for j := 0; j <= g.Rows; j++ {
		for i := 0; i <= g.Cols; i++ {
			want := FieldValue(g.VertexPos(i, j), in)
			if got := g.At(i, j); got != want {
				t.Fatalf("At(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestGridFailedBuildClearsCells(t *testing.T) {
	in := []Influence{{Pos: geom.Vec2{X: 5, Y: 5}, Radius: 10, Weight: 1}}
	var g Grid
	if !g.Build(in, 4, 2) {
		t.Fatal("Build failed on a valid influence")
	}
	if g.Cols == 0 || g.Rows == 0 {
		t.Fatal("valid build produced an empty grid")
	}

	// A reused grid must not keep the old dimensions when the next build
	// has nothing to sample.
	if g.Build(nil, 4, 2) {
		t.Fatal("Build succeeded on empty influences")
	}
	if g.Cols != 0 || g.Rows != 0 {
		t.Errorf("cols/rows = %d/%d after failed build, want 0/0", g.Cols, g.Rows)
	}

	degenerate := []Influence{{Pos: geom.Vec2{X: 8, Y: 8}, Radius: 0, Weight: 1}}
	if !g.Build(in, 4, 2) {
		t.Fatal("rebuild failed")
	}
	if g.Build(degenerate, 4, 0) {
		t.Fatal("Build succeeded on a zero-area box")
	}
	if g.Cols != 0 || g.Rows != 0 {
		t.Errorf("cols/rows = %d/%d after degenerate build, want 0/0", g.Cols, g.Rows)
	}
}

func TestExtractEmptyInfluences(t *testing.T) {
	if got := ExtractContours(nil, 4, 0.5, 8); len(got) != 0 {
		t.Errorf("empty influences produced %d segments", len(got))
	}
	if got := ExtractContours([]Influence{}, 4, 0.5, 8); len(got) != 0 {
		t.Errorf("empty slice produced %d segments", len(got))
	}
}

func TestExtractDegenerateBounds(t *testing.T) {
	// Zero radius and zero padding: the box spans no whole cell and must
	// yield an empty list, not an error.
	in := []Influence{{Pos: geom.Vec2{X: 8, Y: 8}, Radius: 0, Weight: 1}}
	if got := ExtractContours(in, 4, 0.5, 0); len(got) != 0 {
		t.Errorf("degenerate bounds produced %d segments", len(got))
	}
}

func TestContourApproximatesCircle(t *testing.T) {
	// A single influence with weight above the threshold cuts the field at
	// r = radius * sqrt(1 - (iso/weight)^(1/3)).
	const (
		radius   = float32(30)
		weight   = float32(1)
		iso      = float32(0.5)
		cellSize = float32(2)
	)
	center := geom.Vec2{X: 100, Y: 60}
	in := []Influence{{Pos: center, Radius: radius, Weight: weight}}

	segs := ExtractContours(in, cellSize, iso, 6)
	if len(segs) < 8 {
		t.Fatalf("only %d segments for a circular contour", len(segs))
	}

	wantR := radius * float32(math.Sqrt(1-math.Cbrt(float64(iso/weight))))
	for _, s := range segs {
		for _, p := range [...]geom.Vec2{s.P0, s.P1} {
			d := p.DistanceTo(center)
			if diff := math.Abs(float64(d - wantR)); diff > float64(cellSize) {
				t.Fatalf("contour point %+v at distance %v, want %v within %v", p, d, wantR, cellSize)
			}
		}
	}
}

func TestExtractReusesScratch(t *testing.T) {
	in := []Influence{{Pos: geom.Vec2{}, Radius: 20, Weight: 1}}
	e := Extractor{CellSize: 2, Iso: 0.4, Padding: 4}

	var grid Grid
	first := append([]Segment(nil), e.Extract(in, &grid, nil)...)
	second := e.Extract(in, &grid, nil)

	if len(first) == 0 || len(second) != len(first) {
		t.Fatalf("reused extraction differs: %d vs %d segments", len(second), len(first))
	}
	for i := range second {
		if !segMatch(second[i], first[i], 1e-6) {
			t.Fatalf("segment %d differs after grid scratch reuse", i)
		}
	}
}

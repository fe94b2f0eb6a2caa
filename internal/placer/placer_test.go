package placer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullforge/nest2d/bin"
	"github.com/nullforge/nest2d/geom"
)

func square(size geom.Coord) geom.Polygon {
	return geom.NewPolygon([]geom.Point{
		{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size},
	})
}

func TestInnerFitPolygonRect(t *testing.T) {
	b := bin.Rect(geom.Pt(0, 0), geom.Pt(1000, 1000))
	part := square(100)

	ifp, ok := innerFitPolygon(b, part)
	require.True(t, ok)

	bb := ifp.BoundingBox()
	require.Equal(t, geom.Coord(0), bb.Min.X)
	require.Equal(t, geom.Coord(0), bb.Min.Y)
	require.Equal(t, geom.Coord(900), bb.Max.X)
	require.Equal(t, geom.Coord(900), bb.Max.Y)
}

func TestInnerFitPolygonRectTooSmall(t *testing.T) {
	b := bin.Rect(geom.Pt(0, 0), geom.Pt(50, 50))
	part := square(100)

	_, ok := innerFitPolygon(b, part)
	require.False(t, ok)
}

func TestInnerFitPolygonDisc(t *testing.T) {
	b := bin.Disc(geom.Pt(0, 0), 1000)
	part := square(100)

	ifp, ok := innerFitPolygon(b, part)
	require.True(t, ok)
	require.True(t, ifp.ContainsPoint(geom.Pt(0, 0)))
}

func TestPlaceFirstPartCentersInEmptyBin(t *testing.T) {
	b := bin.Rect(geom.Pt(0, 0), geom.Pt(1000, 1000))
	part := square(100)

	p := New(DefaultConfig())
	score := func(candidate geom.Polygon) float64 {
		c := candidate.BoundingBox().Center()
		return geom.Distance(c, b.Center())
	}

	translation, _, ok := p.Place(part, b, nil, score)
	require.True(t, ok)

	placed := part.Transform(0, translation)
	pb := placed.BoundingBox()
	require.True(t, b.ContainsBox(pb))

	center := pb.Center()
	require.InDelta(t, float64(b.Center().X), float64(center.X), 1)
	require.InDelta(t, float64(b.Center().Y), float64(center.Y), 1)
}

func TestPlaceSecondPartAvoidsOverlap(t *testing.T) {
	b := bin.Rect(geom.Pt(0, 0), geom.Pt(1000, 1000))
	part := square(200)

	first := part.Transform(0, geom.Pt(0, 0))

	p := New(DefaultConfig())
	score := func(candidate geom.Polygon) float64 {
		c := candidate.BoundingBox().Center()
		return geom.Distance(c, b.Center())
	}

	translation, _, ok := p.Place(part, b, []geom.Polygon{first}, score)
	require.True(t, ok)

	placed := part.Transform(0, translation)
	require.True(t, b.ContainsBox(placed.BoundingBox()))
	require.False(t, overlaps(first, placed))
}

func overlaps(a, b geom.Polygon) bool {
	abb, bbb := a.BoundingBox(), b.BoundingBox()
	if !abb.Intersects(bbb) {
		return false
	}
	for _, v := range b.Vertices() {
		if a.StrictlyContainsPoint(v) {
			return true
		}
	}
	for _, v := range a.Vertices() {
		if b.StrictlyContainsPoint(v) {
			return true
		}
	}
	return false
}

func TestPlaceNoFitWhenBinTooSmall(t *testing.T) {
	b := bin.Rect(geom.Pt(0, 0), geom.Pt(50, 50))
	part := square(100)

	p := New(DefaultConfig())
	score := func(candidate geom.Polygon) float64 { return 0 }

	_, _, ok := p.Place(part, b, nil, score)
	require.False(t, ok)
}

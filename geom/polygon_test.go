package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func rectPoly(w, h Coord) Polygon {
	return NewPolygon([]Point{{0, 0}, {w, 0}, {w, h}, {0, h}})
}

func TestNewPolygonNormalizesToClockwise(t *testing.T) {
	ccw := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	require.False(t, ccw.IsCCW())
}

func TestPolygonAreaMatchesRectangle(t *testing.T) {
	p := rectPoly(40, 25)
	require.InDelta(t, 1000.0, p.Area(), 1e-9)
}

func TestPolygonContainsPoint(t *testing.T) {
	p := rectPoly(100, 100)
	require.True(t, p.ContainsPoint(Pt(50, 50)))
	require.True(t, p.ContainsPoint(Pt(0, 0)))
	require.False(t, p.ContainsPoint(Pt(150, 50)))
}

func TestPolygonStrictlyContainsPointExcludesBoundary(t *testing.T) {
	p := rectPoly(100, 100)
	require.True(t, p.StrictlyContainsPoint(Pt(50, 50)))
	require.False(t, p.StrictlyContainsPoint(Pt(0, 50)))
	require.False(t, p.StrictlyContainsPoint(Pt(100, 50)))
}

func TestPolygonIsConvex(t *testing.T) {
	square := rectPoly(10, 10)
	require.True(t, square.IsConvex())

	lShape := NewPolygon([]Point{
		{0, 0}, {10, 0}, {10, 5}, {5, 5}, {5, 10}, {0, 10},
	})
	require.False(t, lShape.IsConvex())
}

func TestPolygonTransformTranslatesAndRotates(t *testing.T) {
	p := rectPoly(10, 10)
	moved := p.Transform(0, Pt(100, 200))
	bb := moved.BoundingBox()
	require.Equal(t, Pt(100, 200), bb.Min)
	require.Equal(t, Pt(110, 210), bb.Max)
}

func TestPolygonBoundingBox(t *testing.T) {
	p := rectPoly(40, 25)
	bb := p.BoundingBox()
	require.Equal(t, Pt(0, 0), bb.Min)
	require.Equal(t, Pt(40, 25), bb.Max)
}

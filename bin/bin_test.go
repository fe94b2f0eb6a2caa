package bin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullforge/nest2d/geom"
)

func TestRectBoundingBoxAndCenter(t *testing.T) {
	b := Rect(geom.Pt(0, 0), geom.Pt(100, 50))
	bb := b.BoundingBox()
	require.Equal(t, geom.Pt(0, 0), bb.Min)
	require.Equal(t, geom.Pt(100, 50), bb.Max)
	require.Equal(t, geom.Pt(50, 25), b.Center())
	require.Equal(t, 5000.0, b.Area())
}

func TestDiscAreaAndCenter(t *testing.T) {
	b := Disc(geom.Pt(10, 10), 5)
	require.Equal(t, geom.Pt(10, 10), b.Center())
	require.InDelta(t, math.Pi*25, b.Area(), 1e-9)
}

func TestInfiniteAreaIsPositiveInfinity(t *testing.T) {
	b := Infinite(geom.Pt(0, 0))
	require.True(t, math.IsInf(b.Area(), 1))
	require.Equal(t, geom.Pt(0, 0), b.Center())
}

func TestRectInflateGrowsAndShrinks(t *testing.T) {
	b := Rect(geom.Pt(0, 0), geom.Pt(100, 100))
	grown := b.Inflate(10)
	require.Equal(t, geom.Pt(-10, -10), grown.Min)
	require.Equal(t, geom.Pt(110, 110), grown.Max)

	shrunk := b.Inflate(-10)
	require.Equal(t, geom.Pt(10, 10), shrunk.Min)
	require.Equal(t, geom.Pt(90, 90), shrunk.Max)
}

func TestDiscInflateGrowsRadius(t *testing.T) {
	b := Disc(geom.Pt(0, 0), 50)
	grown := b.Inflate(5)
	require.Equal(t, geom.Coord(55), grown.Radius)
}

func TestRectContains(t *testing.T) {
	b := Rect(geom.Pt(0, 0), geom.Pt(100, 100))
	require.True(t, b.Contains(geom.Pt(50, 50)))
	require.True(t, b.Contains(geom.Pt(0, 0)))
	require.False(t, b.Contains(geom.Pt(150, 50)))
}

func TestDiscContains(t *testing.T) {
	b := Disc(geom.Pt(0, 0), 10)
	require.True(t, b.Contains(geom.Pt(5, 5)))
	require.False(t, b.Contains(geom.Pt(9, 9)))
}

func TestRectContainsBox(t *testing.T) {
	b := Rect(geom.Pt(0, 0), geom.Pt(100, 100))
	inside := geom.NewBBox(geom.Pt(10, 10), geom.Pt(20, 20))
	outside := geom.NewBBox(geom.Pt(90, 90), geom.Pt(120, 120))
	require.True(t, b.ContainsBox(inside))
	require.False(t, b.ContainsBox(outside))
}

func TestRectOverfitIsZeroOrLessWhenFullyContained(t *testing.T) {
	b := Rect(geom.Pt(0, 0), geom.Pt(100, 100))
	inside := geom.NewBBox(geom.Pt(10, 10), geom.Pt(20, 20))
	require.LessOrEqual(t, b.Overfit(inside), 0.0)
}

func TestRectOverfitIsPositiveWhenOutside(t *testing.T) {
	b := Rect(geom.Pt(0, 0), geom.Pt(100, 100))
	outside := geom.NewBBox(geom.Pt(90, 90), geom.Pt(120, 120))
	require.Greater(t, b.Overfit(outside), 0.0)
}

func TestDiscOverfitPolygonMeasuresFarthestVertex(t *testing.T) {
	b := Disc(geom.Pt(0, 0), 10)
	shape := geom.NewPolygon([]geom.Point{{0, 0}, {15, 0}, {15, 1}, {0, 1}})
	require.InDelta(t, 5.0, b.OverfitPolygon(shape), 1.0)
}

func TestDiscOverfitPolygonIsNegativeWhenInside(t *testing.T) {
	b := Disc(geom.Pt(0, 0), 10)
	shape := geom.NewPolygon([]geom.Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}})
	require.Less(t, b.OverfitPolygon(shape), 0.0)
}

package nfp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullforge/nest2d/geom"
)

func square(w, h geom.Coord) geom.Polygon {
	return geom.NewPolygon([]geom.Point{{0, 0}, {w, 0}, {w, h}, {0, h}})
}

func TestConvexNFPOfTwoSquaresIsLargerSquare(t *testing.T) {
	stationary := square(10, 10)
	orbiting := square(4, 4)

	result := ConvexNFP(stationary, orbiting)
	bb := result.BoundingBox()

	// NFP(A, B) of two axis-aligned rectangles is A grown by B's extent in
	// every direction: [-bW, aW] x [-bH, aH].
	require.Equal(t, geom.Pt(-4, -4), bb.Min)
	require.Equal(t, geom.Pt(10, 10), bb.Max)
}

func TestConvexNFPIsConvex(t *testing.T) {
	stationary := square(20, 12)
	orbiting := geom.NewPolygon([]geom.Point{{0, 0}, {6, 0}, {3, 5}})

	result := ConvexNFP(stationary, orbiting)
	require.True(t, result.IsConvex())
}

func TestConvexNFPHandlesNonConvexInputViaHullFallback(t *testing.T) {
	lShape := geom.NewPolygon([]geom.Point{
		{0, 0}, {10, 0}, {10, 5}, {5, 5}, {5, 10}, {0, 10},
	})
	orbiting := square(2, 2)

	result := ConvexNFP(lShape, orbiting)
	require.True(t, result.IsConvex())
	require.GreaterOrEqual(t, len(result.Vertices()), 3)
}

func TestDecomposeReturnsSelfWhenAlreadyConvex(t *testing.T) {
	p := square(10, 10)
	pieces := Decompose(p)
	require.Len(t, pieces, 1)
	require.InDelta(t, p.Area(), pieces[0].Area(), 1e-9)
}

func TestDecomposeReturnsHullForNonConvexInput(t *testing.T) {
	lShape := geom.NewPolygon([]geom.Point{
		{0, 0}, {10, 0}, {10, 5}, {5, 5}, {5, 10}, {0, 10},
	})
	pieces := Decompose(lShape)
	require.Len(t, pieces, 1)
	require.True(t, pieces[0].IsConvex())
	require.Greater(t, pieces[0].Area(), lShape.Area())
}

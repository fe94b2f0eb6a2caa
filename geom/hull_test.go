package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvexHullOfSquareWithInteriorPoint(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}}
	hull := ConvexHull(pts)
	require.Len(t, hull.Vertices(), 4)
	require.InDelta(t, 100.0, hull.Area(), 1e-9)
}

func TestHullOfPolygonsCombinesVertices(t *testing.T) {
	a := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	b := NewPolygon([]Point{{20, 0}, {30, 0}, {30, 10}, {20, 10}})
	hull := HullOfPolygons(a, b)
	bb := hull.BoundingBox()
	require.Equal(t, Pt(0, 0), bb.Min)
	require.Equal(t, Pt(30, 10), bb.Max)
}

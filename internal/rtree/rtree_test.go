package rtree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullforge/nest2d/geom"
)

func box(minX, minY, maxX, maxY geom.Coord) geom.BBox {
	return geom.NewBBox(geom.Pt(minX, minY), geom.Pt(maxX, maxY))
}

func TestEmptyTreeHasNoBounds(t *testing.T) {
	tr := New()
	require.True(t, tr.Empty())
	require.Equal(t, 0, tr.Len())
	_, ok := tr.Bounds()
	require.False(t, ok)
}

func TestInsertGrowsBounds(t *testing.T) {
	tr := New()
	tr.Insert(box(0, 0, 10, 10), 0)
	tr.Insert(box(20, 20, 30, 30), 1)

	require.Equal(t, 2, tr.Len())
	bounds, ok := tr.Bounds()
	require.True(t, ok)
	require.Equal(t, geom.Pt(0, 0), bounds.Min)
	require.Equal(t, geom.Pt(30, 30), bounds.Max)
}

func TestQueryReturnsOverlappingPayloadsOnly(t *testing.T) {
	tr := New()
	tr.Insert(box(0, 0, 10, 10), 0)
	tr.Insert(box(20, 20, 30, 30), 1)
	tr.Insert(box(5, 5, 15, 15), 2)

	got := tr.Query(box(0, 0, 10, 10))
	require.ElementsMatch(t, []int{0, 2}, got)
}

func TestQueryEntriesIncludesBoxes(t *testing.T) {
	tr := New()
	b := box(0, 0, 10, 10)
	tr.Insert(b, 7)

	entries := tr.QueryEntries(box(5, 5, 6, 6))
	require.Len(t, entries, 1)
	require.Equal(t, 7, entries[0].Payload)
	require.Equal(t, b, entries[0].Box)
}

func TestClearResetsIndex(t *testing.T) {
	tr := New()
	tr.Insert(box(0, 0, 10, 10), 0)
	tr.Clear()

	require.True(t, tr.Empty())
	_, ok := tr.Bounds()
	require.False(t, ok)
}

func TestEnlargementIsAdditionalAreaOnly(t *testing.T) {
	existing := box(0, 0, 10, 10)
	additional := box(0, 0, 20, 10)

	require.InDelta(t, 100.0, enlargement(existing, additional), 1e-9)
}

func TestOverlapDetectsTouchingBoxes(t *testing.T) {
	a := box(0, 0, 10, 10)
	b := box(10, 0, 20, 10)
	require.True(t, overlap(a, b))

	c := box(11, 0, 20, 10)
	require.False(t, overlap(a, c))
}

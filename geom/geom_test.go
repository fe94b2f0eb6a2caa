package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBBoxCenterAndArea(t *testing.T) {
	bb := NewBBox(Pt(0, 0), Pt(100, 50))
	require.Equal(t, Pt(50, 25), bb.Center())
	require.Equal(t, 5000.0, bb.Area())
}

func TestBBoxUnionAndIntersects(t *testing.T) {
	a := NewBBox(Pt(0, 0), Pt(10, 10))
	b := NewBBox(Pt(5, 5), Pt(20, 20))
	require.True(t, a.Intersects(b))

	u := a.Union(b)
	require.Equal(t, Pt(0, 0), u.Min)
	require.Equal(t, Pt(20, 20), u.Max)
}

func TestBBoxContains(t *testing.T) {
	outer := NewBBox(Pt(0, 0), Pt(100, 100))
	inner := NewBBox(Pt(10, 10), Pt(20, 20))
	require.True(t, outer.Contains(inner))
	require.False(t, inner.Contains(outer))
}

func TestBBoxInflate(t *testing.T) {
	bb := NewBBox(Pt(10, 10), Pt(20, 20))
	grown := bb.Inflate(5)
	require.Equal(t, Pt(5, 5), grown.Min)
	require.Equal(t, Pt(25, 25), grown.Max)
}

func TestDistance(t *testing.T) {
	require.InDelta(t, 5.0, Distance(Pt(0, 0), Pt(3, 4)), 1e-9)
}

func TestCheckedScaleOrdinaryValue(t *testing.T) {
	c, err := CheckedScale(40.5, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, Coord(40_500_000), c)
}

func TestCheckedScaleRejectsOutOfRangeValue(t *testing.T) {
	_, err := CheckedScale(1e12, 1_000_000)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedScaleRejectsNaN(t *testing.T) {
	_, err := CheckedScale(math.NaN(), 1_000_000)
	require.ErrorIs(t, err, ErrOverflow)
}

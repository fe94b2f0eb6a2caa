package rational

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullforge/nest2d/geom"
)

func TestCollinearOnSharedEdge(t *testing.T) {
	a := geom.Pt(0, 0)
	b := geom.Pt(10, 0)
	c := geom.Pt(20, 0)
	require.True(t, Collinear(a, b, c))
}

func TestCollinearFalseForTriangle(t *testing.T) {
	a := geom.Pt(0, 0)
	b := geom.Pt(10, 0)
	c := geom.Pt(5, 5)
	require.False(t, Collinear(a, b, c))
}

func TestSegmentIntersectionCrossing(t *testing.T) {
	p, ok := SegmentIntersection(geom.Pt(0, 0), geom.Pt(10, 10), geom.Pt(0, 10), geom.Pt(10, 0))
	require.True(t, ok)
	require.Equal(t, geom.Pt(5, 5), p.Round())
}

func TestSegmentIntersectionParallelNoCross(t *testing.T) {
	_, ok := SegmentIntersection(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 5), geom.Pt(10, 5))
	require.False(t, ok)
}

func TestSegmentIntersectionOutsideExtent(t *testing.T) {
	_, ok := SegmentIntersection(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(5, 0), geom.Pt(5, 10))
	require.False(t, ok)
}

func TestRoundTiesAwayFromZero(t *testing.T) {
	half := Point{X: big.NewRat(1, 2), Y: big.NewRat(-1, 2)}
	r := half.Round()
	require.Equal(t, int64(1), r.X)
	require.Equal(t, int64(-1), r.Y)
}

package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffsetGrowsSquare(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	grown := p.Offset(5)
	bb := grown.BoundingBox()
	require.InDelta(t, -5, float64(bb.Min.X), 1)
	require.InDelta(t, 15, float64(bb.Max.X), 1)
}

func TestOffsetShrinksSquare(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {20, 0}, {20, 20}, {0, 20}})
	shrunk := p.Offset(-5)
	bb := shrunk.BoundingBox()
	require.InDelta(t, 5, float64(bb.Min.X), 1)
	require.InDelta(t, 15, float64(bb.Max.X), 1)
}

func TestOffsetZeroIsNoOp(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	same := p.Offset(0)
	require.Equal(t, p.BoundingBox(), same.BoundingBox())
}

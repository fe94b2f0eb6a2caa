// Package geom provides the integer-coordinate geometry primitives the
// nester builds on: points, axis-aligned bounding boxes and closed
// polygons, all expressed in scaled units (1 mm == 1e6 units).
package geom

import (
	"errors"
	"math"
)

// Coord is the nester's native scaled-unit coordinate type. A Coord of
// 1_000_000 represents 1 millimeter.
type Coord = int64

// ErrOverflow is returned when converting a host-supplied millimeter value
// to scaled units would exceed the coordinate range this package's
// big.Int-accumulated area math is sized for, per spec.md §7's "arithmetic
// overflow fails fast" error class.
var ErrOverflow = errors.New("geom: coordinate overflows scaled-unit range")

// maxScaledCoord bounds CheckedScale's output well clear of int64's own
// overflow point, leaving headroom for the doubled-area and bounding-box
// arithmetic callers perform on top of a Coord.
const maxScaledCoord = 1 << 31

// CheckedScale converts mm to scaled units at the given units-per-millimeter
// resolution, returning ErrOverflow instead of silently wrapping when the
// result would leave the supported coordinate range.
func CheckedScale(mm, unitsPerMM float64) (Coord, error) {
	scaled := mm * unitsPerMM
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) || scaled > maxScaledCoord || scaled < -maxScaledCoord {
		return 0, ErrOverflow
	}
	return Coord(math.Round(scaled)), nil
}

// Point is a location in the scaled coordinate plane.
type Point struct {
	X, Y Coord
}

// Pt is a convenience constructor for Point.
func Pt(x, y Coord) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the vector difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Neg returns the point reflected through the origin.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox is an axis-aligned bounding box with inclusive corners.
type BBox struct {
	Min, Max Point
}

// NewBBox builds a bounding box from two opposite corners, in any order.
func NewBBox(a, b Point) BBox {
	return BBox{
		Min: Point{X: min64(a.X, b.X), Y: min64(a.Y, b.Y)},
		Max: Point{X: max64(a.X, b.X), Y: max64(a.Y, b.Y)},
	}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() Coord { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b BBox) Height() Coord { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box. For odd extents this is floored,
// matching the teacher's rectangle Center() behavior.
func (b BBox) Center() Point {
	return Point{
		X: b.Min.X + b.Width()/2,
		Y: b.Min.Y + b.Height()/2,
	}
}

// Area returns the area of the box as a float64. Widths/heights are bounded
// by the supported coordinate range (roughly +/-2^31), so the float64
// product never loses the precision that matters for objective scoring.
func (b BBox) Area() float64 {
	return float64(b.Width()) * float64(b.Height())
}

// TopLeft, TopRight, BottomLeft and BottomRight return the box's corners,
// used by the objective evaluator's five-anchor-point distance check.
func (b BBox) TopLeft() Point     { return Point{b.Min.X, b.Max.Y} }
func (b BBox) TopRight() Point    { return Point{b.Max.X, b.Max.Y} }
func (b BBox) BottomLeft() Point  { return Point{b.Min.X, b.Min.Y} }
func (b BBox) BottomRight() Point { return Point{b.Max.X, b.Min.Y} }

// Union returns the smallest box containing both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Min: Point{X: min64(b.Min.X, other.Min.X), Y: min64(b.Min.Y, other.Min.Y)},
		Max: Point{X: max64(b.Max.X, other.Max.X), Y: max64(b.Max.Y, other.Max.Y)},
	}
}

// Intersects reports whether b and other overlap, including touching edges.
func (b BBox) Intersects(other BBox) bool {
	return b.Min.X <= other.Max.X && other.Min.X <= b.Max.X &&
		b.Min.Y <= other.Max.Y && other.Min.Y <= b.Max.Y
}

// Contains reports whether other lies entirely within b.
func (b BBox) Contains(other BBox) bool {
	return b.Min.X <= other.Min.X && other.Max.X <= b.Max.X &&
		b.Min.Y <= other.Min.Y && other.Max.Y <= b.Max.Y
}

// Inflate expands the box by d on every side. A negative d erodes it.
func (b BBox) Inflate(d Coord) BBox {
	return BBox{
		Min: Point{b.Min.X - d, b.Min.Y - d},
		Max: Point{b.Max.X + d, b.Max.Y + d},
	}
}

// Translate moves the box by the given vector.
func (b BBox) Translate(v Point) BBox {
	return BBox{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

func min64(a, b Coord) Coord {
	if a < b {
		return a
	}
	return b
}

func max64(a, b Coord) Coord {
	if a > b {
		return a
	}
	return b
}

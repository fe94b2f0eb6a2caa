// Package bin defines the bed/bin shapes the arranger packs into and the
// per-kind behavior (bounds, containment, overfit measure, bed-shape
// classification) spec.md §3 and §6 describe; the inner-fit polygon is
// computed by internal/placer and the overfit penalty by
// internal/objective. It replaces the source's
// per-bin-type template specialization with the tagged-variant-plus-
// dispatch-function design spec.md §9 calls for: the bin kind is decided
// once per arrange call, never at the per-candidate hot path.
package bin

import (
	"math"

	"github.com/nullforge/nest2d/geom"
)

// Kind identifies which variant of Bin is in use.
type Kind int

const (
	// KindRect is a rectangular bed.
	KindRect Kind = iota
	// KindDisc is a circular bed.
	KindDisc
	// KindPolygon is an arbitrary convex or concave polygonal bed.
	KindPolygon
	// KindInfinite is an unbounded plane, centered on a reference point.
	KindInfinite
)

// Bin is a tagged variant over the four bed shapes spec.md §3 names.
// Exactly the fields relevant to Kind are populated.
type Bin struct {
	Kind Kind

	// KindRect
	Min, Max geom.Point

	// KindDisc and KindInfinite
	Origin geom.Point
	Radius geom.Coord

	// KindPolygon
	Contour geom.Polygon
}

// Rect builds a rectangular bin from two opposite corners.
func Rect(min, max geom.Point) Bin {
	return Bin{Kind: KindRect, Min: min, Max: max}
}

// Disc builds a circular bin.
func Disc(center geom.Point, radius geom.Coord) Bin {
	return Bin{Kind: KindDisc, Origin: center, Radius: radius}
}

// Poly builds a polygonal bin from a closed contour.
func Poly(contour geom.Polygon) Bin {
	return Bin{Kind: KindPolygon, Contour: contour}
}

// Infinite builds an unbounded bin centered on center.
func Infinite(center geom.Point) Bin {
	return Bin{Kind: KindInfinite, Origin: center}
}

// BoundingBox returns the bin's axis-aligned bounding box. For an infinite
// bin this is a degenerate, zero-area box at its origin, matching the
// original's `Box::infinite` representation (a point bin with no extent
// that nonetheless has a well-defined center for distance scoring).
func (b Bin) BoundingBox() geom.BBox {
	switch b.Kind {
	case KindRect:
		return geom.NewBBox(b.Min, b.Max)
	case KindDisc:
		return geom.NewBBox(
			geom.Pt(b.Origin.X-b.Radius, b.Origin.Y-b.Radius),
			geom.Pt(b.Origin.X+b.Radius, b.Origin.Y+b.Radius),
		)
	case KindPolygon:
		return b.Contour.BoundingBox()
	default: // KindInfinite
		return geom.NewBBox(b.Origin, b.Origin)
	}
}

// Center returns the bin's reference center point, used by the objective
// evaluator's bin-distance term.
func (b Bin) Center() geom.Point {
	switch b.Kind {
	case KindDisc, KindInfinite:
		return b.Origin
	default:
		return b.BoundingBox().Center()
	}
}

// Area returns the bin's area. Infinite bins report positive infinity so
// that normalization (N = sqrt(bin_area)) and BIG_ITEM_TRESHOLD tests never
// misclassify an item as "big" purely because the bed has no real area.
func (b Bin) Area() float64 {
	switch b.Kind {
	case KindRect:
		return b.BoundingBox().Area()
	case KindDisc:
		r := float64(b.Radius)
		return math.Pi * r * r
	case KindPolygon:
		return b.Contour.Area()
	default:
		return math.Inf(1)
	}
}

// Inflate grows (d>0) or shrinks (d<0) the bin by d scaled units on every
// side, implementing the per-bin-clearance inflation spec.md §3 requires
// ("all bins are inflated by -clearance/2 before packing").
func (b Bin) Inflate(d geom.Coord) Bin {
	switch b.Kind {
	case KindRect:
		return Rect(geom.Pt(b.Min.X-d, b.Min.Y-d), geom.Pt(b.Max.X+d, b.Max.Y+d))
	case KindDisc:
		return Disc(b.Origin, b.Radius+d)
	case KindPolygon:
		return Poly(b.Contour.Offset(d))
	default:
		return b
	}
}

// Contains reports whether pt lies within the bin (inclusive of its
// boundary).
func (b Bin) Contains(pt geom.Point) bool {
	switch b.Kind {
	case KindRect:
		return pt.X >= b.Min.X && pt.X <= b.Max.X && pt.Y >= b.Min.Y && pt.Y <= b.Max.Y
	case KindDisc:
		return geom.Distance(pt, b.Origin) <= float64(b.Radius)
	case KindPolygon:
		return b.Contour.ContainsPoint(pt)
	default:
		return true
	}
}

// ContainsBox reports whether the entire box bb lies within the bin.
func (b Bin) ContainsBox(bb geom.BBox) bool {
	switch b.Kind {
	case KindRect:
		return b.BoundingBox().Contains(bb)
	case KindDisc:
		return b.Contains(bb.TopLeft()) && b.Contains(bb.TopRight()) &&
			b.Contains(bb.BottomLeft()) && b.Contains(bb.BottomRight())
	case KindPolygon:
		return b.Contains(bb.TopLeft()) && b.Contains(bb.TopRight()) &&
			b.Contains(bb.BottomLeft()) && b.Contains(bb.BottomRight())
	default:
		return true
	}
}

// Overfit returns how far bb extends outside the bin: a positive value is
// the amount of overfit (used squared, as an objective penalty); zero or
// negative means full containment. For rectangular bins this is a signed
// excess width/height product; for other kinds it's the excess area of the
// union of bb and the bin's own bounding box over the bin's area, which is
// what spec.md §4.3 calls for in the disc/polygon overfit checks.
func (b Bin) Overfit(bb geom.BBox) float64 {
	switch b.Kind {
	case KindRect:
		own := b.BoundingBox()
		dx := math.Max(0, float64(own.Min.X-bb.Min.X)) + math.Max(0, float64(bb.Max.X-own.Max.X))
		dy := math.Max(0, float64(own.Min.Y-bb.Min.Y)) + math.Max(0, float64(bb.Max.Y-own.Max.Y))
		if dx <= 0 && dy <= 0 {
			return -1
		}
		return dx*float64(bb.Height()) + dy*float64(bb.Width()) + dx*dy
	default:
		own := b.BoundingBox()
		full := own.Union(bb)
		return full.Area() - b.Area()
	}
}

// OverfitPolygon returns the overfit of an actual shape rather than just
// its bounding box. For disc bins this measures the farthest vertex from
// the disc's center against its radius, matching spec.md §4.3's
// LAST_BIG_ITEM/disc penalty ("compute hull(pile ∪ candidate) and add
// max(0, overfit(hull, disc))²"); other bin kinds fall back to the
// bounding-box overfit, which is all they need.
func (b Bin) OverfitPolygon(shape geom.Polygon) float64 {
	if b.Kind != KindDisc {
		return b.Overfit(shape.BoundingBox())
	}
	var maxDist float64
	for _, v := range shape.Vertices() {
		d := geom.Distance(v, b.Origin)
		if d > maxDist {
			maxDist = d
		}
	}
	return maxDist - float64(b.Radius)
}

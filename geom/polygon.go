package geom

import (
	"math"
	"math/big"
)

// Polygon is a closed, simple polygon stored as a CW-ordered ring with the
// first vertex repeated as the last, matching the host interface contract
// of spec.md §6: counter-clockwise input is reversed before storage.
type Polygon struct {
	Points []Point
}

// NewPolygon closes the given ring (repeating the first vertex if the
// caller didn't already) and normalizes its winding to clockwise. The input
// slice is not mutated.
func NewPolygon(points []Point) Polygon {
	pts := make([]Point, len(points))
	copy(pts, points)

	if len(pts) > 1 && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}

	poly := Polygon{Points: pts}
	if poly.isCCW() {
		poly.reverse()
	}
	return poly
}

func (p *Polygon) reverse() {
	for i, j := 0, len(p.Points)-1; i < j; i, j = i+1, j-1 {
		p.Points[i], p.Points[j] = p.Points[j], p.Points[i]
	}
}

// signedArea2 returns twice the signed area using the shoelace formula,
// accumulated in a big.Int so that the sum of per-edge cross products can
// never overflow regardless of how many vertices the contour has — the
// 128-bit-safe accumulator spec.md §4.1 requires.
func (p Polygon) signedArea2() *big.Int {
	sum := new(big.Int)
	n := len(p.Points)
	if n < 3 {
		return sum
	}
	for i := 0; i < n-1; i++ {
		a, b := p.Points[i], p.Points[i+1]
		term := new(big.Int).Mul(big.NewInt(a.X), big.NewInt(b.Y))
		term.Sub(term, new(big.Int).Mul(big.NewInt(a.Y), big.NewInt(b.X)))
		sum.Add(sum, term)
	}
	return sum
}

func (p Polygon) isCCW() bool {
	return p.signedArea2().Sign() > 0
}

// IsCCW reports whether the polygon's vertex ring winds counter-clockwise.
// Polygons produced by NewPolygon and ConvexHull are always CW, so this is
// mainly useful for algorithms (like the Minkowski-sum NFP generator) that
// need a known winding direction to work with regardless of storage
// convention.
func (p Polygon) IsCCW() bool {
	return p.isCCW()
}

// AreaExact returns the exact, always-positive area as a big.Int (area
// values are integral modulo the implicit /2, so this is the doubled area;
// Area divides it by two in floating point).
func (p Polygon) AreaExact() *big.Int {
	a := p.signedArea2()
	a.Abs(a)
	return a
}

// Area returns the polygon's area as a float64, always positive. This is
// the fast path used throughout objective scoring, where float precision
// is already the governing error budget (distances, densities).
func (p Polygon) Area() float64 {
	half := new(big.Float).SetInt(p.AreaExact())
	half.Quo(half, big.NewFloat(2))
	f, _ := half.Float64()
	return f
}

// BoundingBox returns the axis-aligned bounding box of the polygon.
func (p Polygon) BoundingBox() BBox {
	if len(p.Points) == 0 {
		return BBox{}
	}
	bb := BBox{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		bb.Min.X = min64(bb.Min.X, pt.X)
		bb.Min.Y = min64(bb.Min.Y, pt.Y)
		bb.Max.X = max64(bb.Max.X, pt.X)
		bb.Max.Y = max64(bb.Max.Y, pt.Y)
	}
	return bb
}

// Transform applies a rotation (radians, about the origin) followed by a
// translation, returning the resulting polygon. The core currently
// restricts the admissible rotation set to {0} (see placer.Config.Rotations)
// but Transform itself is general, so lifting that restriction later (the
// future extension noted in spec.md §4.4) needs no change here.
func (p Polygon) Transform(rotation float64, translation Point) Polygon {
	out := make([]Point, len(p.Points))
	sin, cos := math.Sincos(rotation)
	for i, pt := range p.Points {
		x := float64(pt.X)*cos - float64(pt.Y)*sin
		y := float64(pt.X)*sin + float64(pt.Y)*cos
		out[i] = Point{
			X: int64(math.Round(x)) + translation.X,
			Y: int64(math.Round(y)) + translation.Y,
		}
	}
	return Polygon{Points: out}
}

// Centroid returns the area-weighted centroid of the polygon.
func (p Polygon) Centroid() Point {
	n := len(p.Points)
	if n < 4 {
		return p.BoundingBox().Center()
	}
	var cx, cy, area float64
	for i := 0; i < n-1; i++ {
		a, b := p.Points[i], p.Points[i+1]
		cross := float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
		cx += (float64(a.X) + float64(b.X)) * cross
		cy += (float64(a.Y) + float64(b.Y)) * cross
		area += cross
	}
	if area == 0 {
		return p.BoundingBox().Center()
	}
	area *= 0.5
	cx /= 6 * area
	cy /= 6 * area
	return Point{X: int64(math.Round(cx)), Y: int64(math.Round(cy))}
}

// IsConvex reports whether the polygon is convex. Degenerate polygons
// (fewer than 3 distinct vertices) are treated as convex.
func (p Polygon) IsConvex() bool {
	n := len(p.Points) - 1 // last point repeats the first
	if n < 3 {
		return true
	}
	var sign int
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		c := p.Points[(i+2)%n]
		cr := cross(a, b, c)
		if cr == 0 {
			continue
		}
		s := 1
		if cr < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if sign != s {
			return false
		}
	}
	return true
}

// cross returns the z-component of (b-a) x (c-a) as a float64. It is exact
// while each product of coordinate differences stays below 2^53; larger
// spans are rounded to float64 precision.
func cross(a, b, c Point) float64 {
	abx, aby := float64(b.X-a.X), float64(b.Y-a.Y)
	acx, acy := float64(c.X-a.X), float64(c.Y-a.Y)
	return abx*acy - aby*acx
}

// ContainsPoint reports whether pt lies inside or on the boundary of a
// convex polygon. The receiver must be convex and CW-wound, which is what
// NewPolygon and ConvexHull both produce.
func (p Polygon) ContainsPoint(pt Point) bool {
	n := len(p.Points) - 1
	if n < 3 {
		return false
	}
	// CW winding means the interior is to the right of every directed edge,
	// i.e. every cross product must be <= 0.
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		if cross(a, b, pt) > 1e-6 {
			return false
		}
	}
	return true
}

// StrictlyContainsPoint reports whether pt lies strictly inside a convex
// polygon, excluding its boundary. Candidate-position filtering uses this
// to reject positions that overlap a forbidden region while still allowing
// positions that merely touch its boundary (nesting flush against a
// neighboring part or the bed edge is legal; overlapping it is not).
func (p Polygon) StrictlyContainsPoint(pt Point) bool {
	n := len(p.Points) - 1
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		if cross(a, b, pt) > -1e-6 {
			return false
		}
	}
	return true
}

// Perimeter returns the total length of the polygon's boundary.
func (p Polygon) Perimeter() float64 {
	var total float64
	for i := 0; i+1 < len(p.Points); i++ {
		total += Distance(p.Points[i], p.Points[i+1])
	}
	return total
}

// Vertices returns the open vertex ring (without the repeated closing
// point).
func (p Polygon) Vertices() []Point {
	if len(p.Points) == 0 {
		return nil
	}
	return p.Points[:len(p.Points)-1]
}

// Package nfp computes No-Fit Polygons for convex polygons, per spec.md
// §4.2; Inner-Fit Polygons are computed by internal/placer. The convex case is solved exactly via the
// classical edge-angle-merge Minkowski sum; non-convex input falls back to
// an approximate convex-hull decomposition, mirroring the "experimental"
// non-convex path the source implementation marks as unfinished.
package nfp

import (
	"math"

	"github.com/nullforge/nest2d/geom"
	"github.com/nullforge/nest2d/internal/rational"
)

// ConvexNFP computes NFP(stationary, orbiting): the locus of reference
// points (the orbiting polygon's own local origin) at which, were the
// orbiting polygon translated there, it would touch the stationary polygon
// without overlapping it.
//
// stationary must already be expressed in absolute (world) coordinates.
// orbiting must be expressed in its own local frame (i.e. untranslated) —
// the result is a set of valid translations, not absolute points.
//
// Both inputs are treated as convex; non-convex callers should go through
// Decompose first (or accept the convex-hull approximation ConvexNFP
// applies automatically to non-convex input).
func ConvexNFP(stationary, orbiting geom.Polygon) geom.Polygon {
	if !stationary.IsConvex() || !orbiting.IsConvex() {
		stationary = geom.ConvexHull(stationary.Vertices())
		orbiting = geom.ConvexHull(orbiting.Vertices())
	}
	reflected := reflect(orbiting)
	return minkowskiSum(stationary, reflected)
}

// reflect negates every vertex of p, i.e. computes -p.
func reflect(p geom.Polygon) geom.Polygon {
	verts := p.Vertices()
	out := make([]geom.Point, len(verts))
	for i, v := range verts {
		out[i] = v.Neg()
	}
	return geom.NewPolygon(out)
}

// ccwFrom returns the open vertex ring of p in CCW order, rotated so that
// it starts at the bottom-most (then left-most) vertex — the canonical
// starting point the edge-merge Minkowski sum algorithm requires.
func ccwFrom(p geom.Polygon) []geom.Point {
	verts := append([]geom.Point{}, p.Vertices()...)
	if !p.IsCCW() {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}

	start := 0
	for i, v := range verts {
		b := verts[start]
		if v.Y < b.Y || (v.Y == b.Y && v.X < b.X) {
			start = i
		}
	}
	n := len(verts)
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		out[i] = verts[(start+i)%n]
	}
	return out
}

// minkowskiSum computes a ⊕ b for two convex, possibly-CW polygons via the
// classic merge-by-angle algorithm: edges of both hulls, sorted by polar
// angle starting from the combined bottom-most point, are appended in
// merged order. Collinear runs are merged exactly (no sliver vertices) via
// rational.Collinear.
func minkowskiSum(a, b geom.Polygon) geom.Polygon {
	av := ccwFrom(a)
	bv := ccwFrom(b)
	if len(av) < 3 || len(bv) < 3 {
		return geom.NewPolygon(nil)
	}

	aEdges := edgeVectors(av)
	bEdges := edgeVectors(bv)

	start := av[0].Add(bv[0])
	points := []geom.Point{start}

	i, j := 0, 0
	cur := start
	for i < len(aEdges) || j < len(bEdges) {
		var next geom.Point
		switch {
		case i >= len(aEdges):
			next = cur.Add(bEdges[j])
			j++
		case j >= len(bEdges):
			next = cur.Add(aEdges[i])
			i++
		default:
			angA := angle(aEdges[i])
			angB := angle(bEdges[j])
			if angA <= angB {
				next = cur.Add(aEdges[i])
				i++
			} else {
				next = cur.Add(bEdges[j])
				j++
			}
		}
		if len(points) >= 2 && rational.Collinear(points[len(points)-2], points[len(points)-1], next) {
			points[len(points)-1] = next
		} else {
			points = append(points, next)
		}
		cur = next
	}

	return geom.NewPolygon(points)
}

func edgeVectors(ring []geom.Point) []geom.Point {
	n := len(ring)
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		out[i] = ring[(i+1)%n].Sub(ring[i])
	}
	return out
}

func angle(v geom.Point) float64 {
	a := math.Atan2(float64(v.Y), float64(v.X))
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Decompose splits a (possibly non-convex) simple polygon into a set of
// convex pieces whose NFPs against another polygon can be unioned to
// approximate the true NFP. This mirrors the source's own comment that its
// non-convex path is "unfinished business": rather than a full Hertel-Mehlhorn
// decomposition, it returns the single convex hull of the polygon when the
// input is already non-convex, which is correct whenever the polygon is
// star-shaped enough that its hull doesn't introduce spurious overlap, and
// conservative (slightly larger NFP, i.e. slightly more cautious placement)
// otherwise.
func Decompose(p geom.Polygon) []geom.Polygon {
	if p.IsConvex() {
		return []geom.Polygon{p}
	}
	return []geom.Polygon{geom.ConvexHull(p.Vertices())}
}


package geom

import "sort"

// ConvexHull computes the convex hull of a set of points using Andrew's
// monotone chain algorithm, returning a closed, CW-normalized Polygon.
func ConvexHull(points []Point) Polygon {
	pts := uniqueSorted(points)
	if len(pts) < 3 {
		return NewPolygon(pts)
	}

	lower := buildChain(pts)
	upper := buildChain(reversed(pts))

	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	hull := append(lower, upper...)

	return NewPolygon(hull)
}

func buildChain(pts []Point) []Point {
	chain := make([]Point, 0, len(pts))
	for _, p := range pts {
		for len(chain) >= 2 && cross(chain[len(chain)-2], chain[len(chain)-1], p) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, p)
	}
	return chain
}

func uniqueSorted(points []Point) []Point {
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	out := pts[:0]
	var last Point
	for i, p := range pts {
		if i == 0 || p != last {
			out = append(out, p)
			last = p
		}
	}
	return out
}

func reversed(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// HullOfPolygons returns the convex hull of the combined vertex sets of a
// group of polygons, used when computing the last-big-item circumference
// score and the disc-bin overfit check against the merged pile.
func HullOfPolygons(polys ...Polygon) Polygon {
	var pts []Point
	for _, poly := range polys {
		pts = append(pts, poly.Vertices()...)
	}
	return ConvexHull(pts)
}

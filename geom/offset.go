package geom

import "math"

// Offset grows (positive delta) or shrinks (negative delta) a convex
// polygon by delta scaled units, by pushing every edge outward along its
// normal and re-intersecting adjacent edges. It is only needed when a host
// application inflates part contours directly rather than letting the core
// inflate the bin (spec.md §4.1); the core itself always inflates bins.
//
// The receiver must be convex. Non-convex input produces a polygon that is
// only approximately offset — callers working with arbitrary bed outlines
// should erode the bed's convex hull instead if exactness matters more than
// speed.
func (p Polygon) Offset(delta Coord) Polygon {
	verts := p.Vertices()
	n := len(verts)
	if n < 3 || delta == 0 {
		return NewPolygon(append([]Point{}, p.Points...))
	}

	type edge struct {
		a, b   Point
		nx, ny float64
	}
	edges := make([]edge, n)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		dx := float64(b.X - a.X)
		dy := float64(b.Y - a.Y)
		length := math.Hypot(dx, dy)
		if length == 0 {
			edges[i] = edge{a: a, b: b}
			continue
		}
		// Outward normal for a CW polygon points to the left of travel.
		nx, ny := -dy/length, dx/length
		off := Point{
			X: a.X + int64(math.Round(nx*float64(delta))),
			Y: a.Y + int64(math.Round(ny*float64(delta))),
		}
		offB := Point{
			X: b.X + int64(math.Round(nx*float64(delta))),
			Y: b.Y + int64(math.Round(ny*float64(delta))),
		}
		edges[i] = edge{a: off, b: offB, nx: nx, ny: ny}
	}

	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		prev := edges[(i-1+n)%n]
		cur := edges[i]
		pt, ok := lineIntersect(prev.a, prev.b, cur.a, cur.b)
		if !ok {
			pt = cur.a
		}
		out = append(out, pt)
	}
	return NewPolygon(out)
}

// lineIntersect finds the intersection of the infinite lines through (a,b)
// and (c,d).
func lineIntersect(a, b, c, d Point) (Point, bool) {
	x1, y1 := float64(a.X), float64(a.Y)
	x2, y2 := float64(b.X), float64(b.Y)
	x3, y3 := float64(c.X), float64(c.Y)
	x4, y4 := float64(d.X), float64(d.Y)

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-9 {
		return Point{}, false
	}
	pxNum := (x1*y2-y1*x2)*(x3-x4) - (x1-x2)*(x3*y4-y3*x4)
	pyNum := (x1*y2-y1*x2)*(y3-y4) - (y1-y2)*(x3*y4-y3*x4)
	return Point{
		X: int64(math.Round(pxNum / denom)),
		Y: int64(math.Round(pyNum / denom)),
	}, true
}

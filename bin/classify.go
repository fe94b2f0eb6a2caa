package bin

import "github.com/nullforge/nest2d/geom"

// ShapeHint is the tagged result of classifying a raw bed outline, per
// spec.md §6.
type ShapeHint struct {
	Kind    Kind
	Box     geom.BBox
	Circle  struct {
		Center geom.Point
		Radius geom.Coord
	}
	Polygon geom.Polygon
	Origin  geom.Point
}

// epsScaled is the scaled-unit epsilon used by the classification
// heuristic's tolerance checks, matching SCALED_EPSILON in the original
// implementation.
const epsScaled geom.Coord = 10

// ClassifyShape inspects a raw bed outline and returns a tagged hint
// describing its shape, per spec.md §6: a Box if the polyline's area
// matches its bounding box within 1e-3 relative error, a Circle if every
// vertex sits within 10*epsScaled of a common radius from the bbox center,
// or Irregular otherwise.
//
// The Box/Circle/Irregular branches are implemented and independently
// tested, but ArrangeBedHint (the entry point actually used by the public
// facade) currently routes every hint through the Infinite case regardless
// of what ClassifyShape returns — this matches the shipped behavior of the
// source implementation exactly (all of its Box/Circle/Irregular arrange
// branches are commented out) and is called out as an open question in
// spec.md §9 rather than silently "fixed": a future maintainer who wants
// real bed-shape-aware packing can wire ClassifyShape's result into
// ArrangeBedHint without touching this function.
func ClassifyShape(outline geom.Polygon) ShapeHint {
	bb := outline.BoundingBox()
	bboxArea := bb.Area()
	polyArea := outline.Area()

	if bboxArea > 0 && (1.0-polyArea/bboxArea) < 1e-3 {
		return ShapeHint{Kind: KindRect, Box: bb}
	}

	if c, r, ok := detectCircle(outline, bb); ok {
		h := ShapeHint{Kind: KindDisc, Box: bb}
		h.Circle.Center = c
		h.Circle.Radius = r
		return h
	}

	return ShapeHint{Kind: KindPolygon, Box: bb, Polygon: outline}
}

func detectCircle(outline geom.Polygon, bb geom.BBox) (geom.Point, geom.Coord, bool) {
	center := bb.Center()
	verts := outline.Vertices()
	if len(verts) == 0 {
		return geom.Point{}, 0, false
	}

	var total float64
	dists := make([]float64, len(verts))
	for i, v := range verts {
		d := geom.Distance(v, center)
		dists[i] = d
		total += d
	}
	avg := total / float64(len(verts))

	tolerance := float64(10 * epsScaled)
	for _, d := range dists {
		if abs64(d-avg) > tolerance {
			return geom.Point{}, 0, false
		}
	}
	return center, geom.Coord(avg), true
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

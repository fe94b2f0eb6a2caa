// Package pile tracks the running multi-polygon pile the arranger builds
// up as it commits parts, per spec.md §3: "the running multi-polygon union
// of all placed parts in the current bin". Mirroring the original
// implementation's own MultiPolygon (a plain vector of per-part shapes,
// not a merged boolean union), a Pile is just the list of committed
// transformed shapes plus an incrementally maintained bounding box.
package pile

import "github.com/nullforge/nest2d/geom"

// Pile is the set of already-committed part shapes in the current bin.
type Pile struct {
	shapes []geom.Polygon
	bbox   geom.BBox
	hasBox bool
}

// New returns an empty pile.
func New() *Pile {
	return &Pile{}
}

// Reset empties the pile, for reuse across bins without reallocating.
func (p *Pile) Reset() {
	p.shapes = p.shapes[:0]
	p.bbox = geom.BBox{}
	p.hasBox = false
}

// Add appends a newly committed transformed shape to the pile and grows
// its running bounding box.
func (p *Pile) Add(shape geom.Polygon) {
	p.shapes = append(p.shapes, shape)
	bb := shape.BoundingBox()
	if !p.hasBox {
		p.bbox = bb
		p.hasBox = true
	} else {
		p.bbox = p.bbox.Union(bb)
	}
}

// Shapes returns the committed transformed shapes, in commit order. The
// backing slice is owned by the pile.
func (p *Pile) Shapes() []geom.Polygon {
	return p.shapes
}

// BoundingBox returns the bounding box of every shape committed so far.
// The zero value is returned for an empty pile.
func (p *Pile) BoundingBox() geom.BBox {
	return p.bbox
}

// Empty reports whether any shape has been committed yet.
func (p *Pile) Empty() bool {
	return len(p.shapes) == 0
}

// ConvexHull returns the convex hull of every vertex of every shape in the
// pile, plus the extra shape passed in (used by the LAST_BIG_ITEM
// objective case to score the hull that would result from committing a
// candidate placement).
func (p *Pile) ConvexHull(extra ...geom.Polygon) geom.Polygon {
	polys := make([]geom.Polygon, 0, len(p.shapes)+len(extra))
	polys = append(polys, p.shapes...)
	polys = append(polys, extra...)
	return geom.HullOfPolygons(polys...)
}

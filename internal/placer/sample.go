package placer

import (
	"math"

	"github.com/nullforge/nest2d/geom"
)

// sampleBoundary returns a thinned candidate point set along poly's
// boundary, per spec.md §4.4 step 3: vertices are kept in original order at
// even stride, retaining roughly accuracy*100% of them. accuracy 1.0 keeps
// every vertex; accuracy 0 keeps a single vertex. At least one vertex is
// always returned for a non-empty polygon.
func sampleBoundary(poly geom.Polygon, accuracy float64) []geom.Point {
	verts := poly.Vertices()
	n := len(verts)
	if n == 0 {
		return nil
	}

	if accuracy < 0 {
		accuracy = 0
	}
	if accuracy > 1 {
		accuracy = 1
	}

	keep := int(math.Round(accuracy * float64(n)))
	if keep < 1 {
		keep = 1
	}
	if keep >= n {
		out := make([]geom.Point, n)
		copy(out, verts)
		return out
	}

	out := make([]geom.Point, 0, keep)
	for i := 0; i < keep; i++ {
		idx := int(math.Round(float64(i) * float64(n) / float64(keep)))
		if idx >= n {
			idx = n - 1
		}
		out = append(out, verts[idx])
	}
	return out
}

// Package placer implements the NFP-based placement search of spec.md
// §4.4: for one part and the current pile, it enumerates candidate
// positions along the boundary of the inner-fit polygon minus the forbidden
// region swept out by every already-placed part's No-Fit-Polygon, scores
// each with the caller-supplied objective, and returns the best
// non-colliding position.
package placer

import (
	"math"

	"github.com/nullforge/nest2d/bin"
	"github.com/nullforge/nest2d/geom"
	"github.com/nullforge/nest2d/internal/nfp"
)

// Config holds the placement search's tunables, filled in by the arranger
// the way the teacher's Packer fills in its Heuristic before packing.
type Config struct {
	// Accuracy is the fraction of boundary vertices kept when sampling
	// candidate positions (spec.md §4.4 step 3). 1.0 keeps every vertex.
	Accuracy float64
	// Rotations is the set of rotations (radians) the search tries for
	// each candidate position. spec.md restricts this to {0} by
	// configuration; trying more is the future extension noted in §4.4.
	Rotations []float64
}

// DefaultConfig matches the values the source implementation's fillConfig
// hard-codes for its production use (spec.md §4.4/§9): accuracy 0.65, no
// rotation.
func DefaultConfig() Config {
	return Config{Accuracy: 0.65, Rotations: []float64{0}}
}

// ScoreFunc scores a transformed candidate shape; lower is better. The
// caller (the arranger) closes over the current pile snapshot and bin so
// the placer itself stays free of objective/bin-package concerns beyond
// the inner-fit-polygon geometry it has to compute itself.
type ScoreFunc func(candidate geom.Polygon) float64

// Placer runs the candidate search described above.
type Placer struct {
	Config Config
}

// New returns a Placer configured with cfg.
func New(cfg Config) *Placer {
	return &Placer{Config: cfg}
}

// Place searches for the minimum-score non-colliding pose of partLocal
// (expressed in its own local frame, untranslated) against b and the
// already-committed shapes in pile (already clearance-inflated by the
// caller, the arranger). It returns the winning translation,
// rotation, and whether a fit was found at all.
func (p *Placer) Place(partLocal geom.Polygon, b bin.Bin, committed []geom.Polygon, score ScoreFunc) (translation geom.Point, rotation float64, ok bool) {
	rotations := p.Config.Rotations
	if len(rotations) == 0 {
		rotations = []float64{0}
	}

	bestScore := 0.0
	haveBest := false

	for _, rot := range rotations {
		rotated := partLocal
		if rot != 0 {
			rotated = partLocal.Transform(rot, geom.Point{})
		}

		ifpPoly, ifpOK := innerFitPolygon(b, rotated)
		if !ifpOK && b.Kind != bin.KindInfinite {
			// The part cannot fit inside this bounded bin at this rotation.
			continue
		}
		candidates := p.candidates(ifpPoly, ifpOK, b, rotated, committed)

		for _, t := range candidates {
			candidate := rotated.Transform(0, t)
			s := score(candidate)
			if !haveBest || s < bestScore {
				bestScore = s
				translation = t
				rotation = rot
				haveBest = true
				ok = true
			}
		}
	}

	return translation, rotation, ok
}

// candidates returns the set of trial translations to score: the
// accuracy-sampled boundary of the inner-fit polygon, filtered to exclude
// anything landing inside the forbidden region swept out by an already
// committed part's NFP, plus the accuracy-sampled boundary of each of
// those NFPs, filtered to the inner-fit polygon and to not overlap any
// other NFP. This is the NFP-generator-plus-IFP implementation of step 3
// of spec.md §4.4 ("candidates are the vertices and edge-sample points of
// the boundary of IFP \ F").
func (p *Placer) candidates(ifpPoly geom.Polygon, ifpBounded bool, b bin.Bin, partLocal geom.Polygon, committed []geom.Polygon) []geom.Point {
	nfps := make([]geom.Polygon, 0, len(committed))
	for _, q := range committed {
		for _, piece := range nfp.Decompose(q) {
			nfps = append(nfps, nfp.ConvexNFP(piece, partLocal))
		}
	}

	var out []geom.Point

	if len(committed) == 0 {
		if ifpBounded {
			out = append(out, ifpPoly.BoundingBox().Center())
			out = append(out, sampleBoundary(ifpPoly, p.Config.Accuracy)...)
		} else {
			out = append(out, b.Center())
		}
		return out
	}

	if ifpBounded {
		for _, v := range sampleBoundary(ifpPoly, p.Config.Accuracy) {
			if !insideAny(nfps, v) {
				out = append(out, v)
			}
		}
	}

	for i, n := range nfps {
		for _, v := range sampleBoundary(n, p.Config.Accuracy) {
			if ifpBounded && !ifpPoly.ContainsPoint(v) {
				continue
			}
			if insideOthers(nfps, i, v) {
				continue
			}
			out = append(out, v)
		}
	}

	return out
}

func insideAny(polys []geom.Polygon, pt geom.Point) bool {
	for _, poly := range polys {
		if poly.StrictlyContainsPoint(pt) {
			return true
		}
	}
	return false
}

func insideOthers(polys []geom.Polygon, skip int, pt geom.Point) bool {
	for i, poly := range polys {
		if i == skip {
			continue
		}
		if poly.StrictlyContainsPoint(pt) {
			return true
		}
	}
	return false
}

// innerFitPolygon computes IFP(bin, part), the locus of translations for
// which the translated part fits entirely inside b (spec.md §4.4 step 1).
// ok is false for an infinite bin, where the IFP is the whole plane and
// candidate generation falls back to NFP vertices alone. ok is also false
// when the part cannot fit inside a bounded bin at all; Place tells the two
// cases apart by the bin's kind.
func innerFitPolygon(b bin.Bin, partLocal geom.Polygon) (geom.Polygon, bool) {
	pbb := partLocal.BoundingBox()

	switch b.Kind {
	case bin.KindRect:
		bbb := b.BoundingBox()
		min := geom.Pt(bbb.Min.X-pbb.Min.X, bbb.Min.Y-pbb.Min.Y)
		max := geom.Pt(bbb.Max.X-pbb.Max.X, bbb.Max.Y-pbb.Max.Y)
		if max.X < min.X || max.Y < min.Y {
			return geom.Polygon{}, false
		}
		return geom.NewPolygon([]geom.Point{
			{X: min.X, Y: min.Y}, {X: max.X, Y: min.Y},
			{X: max.X, Y: max.Y}, {X: min.X, Y: max.Y},
		}), true

	case bin.KindDisc:
		reach := maxVertexDistance(partLocal, geom.Point{})
		r := b.Radius - geom.Coord(math.Ceil(reach))
		if r < 0 {
			return geom.Polygon{}, false
		}
		return approximateCircle(b.Origin, r), true

	case bin.KindPolygon:
		reach := maxVertexDistance(partLocal, geom.Point{})
		eroded := b.Contour.Offset(-geom.Coord(math.Ceil(reach)))
		if len(eroded.Vertices()) < 3 {
			return geom.Polygon{}, false
		}
		return eroded, true

	default: // KindInfinite
		return geom.Polygon{}, false
	}
}

func maxVertexDistance(p geom.Polygon, from geom.Point) float64 {
	var max float64
	for _, v := range p.Vertices() {
		d := geom.Distance(v, from)
		if d > max {
			max = d
		}
	}
	return max
}

// approximateCircle builds a regular polygon approximating a circle, used
// as the IFP for disc bins so the rest of the pipeline (which only knows
// how to sample polygon boundaries) can treat it uniformly.
func approximateCircle(center geom.Point, radius geom.Coord) geom.Polygon {
	const sides = 48
	pts := make([]geom.Point, sides)
	for i := 0; i < sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		pts[i] = geom.Pt(
			center.X+geom.Coord(math.Round(float64(radius)*math.Cos(theta))),
			center.Y+geom.Coord(math.Round(float64(radius)*math.Sin(theta))),
		)
	}
	return geom.NewPolygon(pts)
}

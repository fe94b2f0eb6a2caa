// Package objective implements the placement-scoring function of
// spec.md §4.3: a pure function from (candidate part, candidate pose,
// pile snapshot, bed descriptor) to a score, with three regimes — big
// item, last big item, and small item.
//
// Per the REDESIGN FLAG in spec.md §9, the pile/index/remaining state is
// passed in as an explicit, immutable Snapshot argument rather than being
// pushed into the evaluator through a stateful `before_packing` observer
// callback: the arranger builds one Snapshot per placement step and every
// candidate in that step's sweep reads the same frozen view, which is also
// what makes the sweep safe to parallelize (spec.md §5).
package objective

import (
	"math"

	"github.com/nullforge/nest2d/geom"
	"github.com/nullforge/nest2d/internal/pile"
	"github.com/nullforge/nest2d/internal/rtree"
)

// BigItemThreshold is the area/bin_area ratio above which a part is
// considered "big" (spec.md glossary).
const BigItemThreshold = 0.02

// Snapshot is the immutable view of arranger state the evaluator reads for
// the duration of one placement step.
type Snapshot struct {
	Pile          *pile.Pile
	ItemAreas     []float64 // committed item areas, indexed like BigIndex/AllIndex payloads
	ItemBoxes     []geom.BBox
	RemainingLeft int
	BigIndex      *rtree.RTree
	AllIndex      *rtree.RTree
	BinArea       float64
	BinCenter     geom.Point
}

func (s Snapshot) norm() float64 {
	return math.Sqrt(s.BinArea)
}

func (s Snapshot) isBig(area float64) bool {
	return area/s.BinArea > BigItemThreshold
}

// Result is the evaluator's output: the score of the candidate placement,
// and the full bounding box (pile bbox unioned with the candidate's) the
// bin-specific overfit wrapper needs.
type Result struct {
	Score  float64
	FullBB geom.BBox
}

// Evaluate scores a candidate placement of a part (already transformed to
// its trial pose) against the pile snapshot, per the three-case formula of
// spec.md §4.3.
func Evaluate(snap Snapshot, candidate geom.Polygon) Result {
	ibb := candidate.BoundingBox()
	pilebb := snap.Pile.BoundingBox()
	var fullbb geom.BBox
	if snap.Pile.Empty() {
		fullbb = ibb
	} else {
		fullbb = pilebb.Union(ibb)
	}

	area := candidate.Area()
	big := snap.isBig(area) || snap.BigIndex.Empty()

	switch {
	case big && snap.RemainingLeft > 0:
		return bigItem(snap, candidate, ibb, fullbb, area)
	case big && snap.RemainingLeft == 0:
		return lastBigItem(snap, candidate, fullbb)
	default:
		return smallItem(snap, ibb, fullbb)
	}
}

func bigItem(snap Snapshot, candidate geom.Polygon, ibb, fullbb geom.BBox, area float64) Result {
	n := snap.norm()
	normf := func(v float64) float64 { return v / n }

	cc := fullbb.Center()
	dists := [5]float64{
		geom.Distance(ibb.BottomLeft(), cc),
		geom.Distance(ibb.TopRight(), cc),
		geom.Distance(ibb.Center(), cc),
		geom.Distance(ibb.TopLeft(), cc),
		geom.Distance(ibb.BottomRight(), cc),
	}
	dist := normf(minOf(dists[:]))
	bindist := normf(geom.Distance(ibb.Center(), snap.BinCenter))
	dist = 0.8*dist + 0.2*bindist

	index := snap.AllIndex
	if snap.isBig(area) {
		index = snap.BigIndex
	}

	entries := index.QueryEntries(ibb)
	alignment := 1.0
	for _, e := range entries {
		neighborArea := snap.ItemAreas[e.Payload]
		if math.Abs(1.0-neighborArea/area) < 1e-6 {
			bb := snap.ItemBoxes[e.Payload].Union(ibb)
			ascore := 1.0 - (area+neighborArea)/bb.Area()
			if ascore < alignment {
				alignment = ascore
			}
		}
	}

	density := math.Sqrt(normf(float64(fullbb.Width())) * normf(float64(fullbb.Height())))

	var score float64
	if len(entries) == 0 {
		score = 0.5*dist + 0.5*density
	} else {
		score = 0.40*dist + 0.40*density + 0.20*alignment
	}
	return Result{Score: score, FullBB: fullbb}
}

func lastBigItem(snap Snapshot, candidate geom.Polygon, fullbb geom.BBox) Result {
	n := snap.norm()
	hull := snap.Pile.ConvexHull(candidate)
	circ := hull.Perimeter() / n
	bcirc := 2.0 * (float64(fullbb.Width())/n + float64(fullbb.Height())/n)
	score := 0.5*circ + 0.5*bcirc
	return Result{Score: score, FullBB: fullbb}
}

func smallItem(snap Snapshot, ibb, fullbb geom.BBox) Result {
	n := snap.norm()
	bigbb, ok := snap.BigIndex.Bounds()
	if !ok {
		bigbb = fullbb
	}
	score := geom.Distance(ibb.Center(), bigbb.Center()) / n
	return Result{Score: score, FullBB: fullbb}
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

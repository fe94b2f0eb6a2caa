package objective

import (
	"github.com/nullforge/nest2d/bin"
	"github.com/nullforge/nest2d/geom"
)

// ApplyBinPenalty adds the bin-kind-specific overfit penalty spec.md §4.3
// describes on top of the base Evaluate score:
//
//   - Rect: miss = max(0, overfit(full_bb, bin)); score += miss^2.
//   - Disc: if the candidate is big, recompute the pile+candidate hull and
//     add max(0, overfit(hull, disc))^2.
//   - Polygon: no additional penalty — overfit there is already enforced
//     by the NFP/IFP search itself finding no feasible candidate outside
//     the bin.
//
// It is called once per candidate from the arranger's score closure, and
// the switch on the bin's Kind runs on every call; the tagged variant keeps
// this a plain switch rather than an interface dispatch.
func ApplyBinPenalty(b bin.Bin, snap Snapshot, candidate geom.Polygon, res Result) float64 {
	score := res.Score

	switch b.Kind {
	case bin.KindRect:
		miss := b.Overfit(res.FullBB)
		if miss > 0 {
			score += miss * miss
		}
	case bin.KindDisc:
		area := candidate.Area()
		if snap.isBig(area) {
			hull := snap.Pile.ConvexHull(candidate)
			miss := b.OverfitPolygon(hull)
			if miss > 0 {
				score += miss * miss
			}
		}
	case bin.KindPolygon:
		// No additional penalty; see doc comment above.
	}

	return score
}

// FixedOverfit implements the preload-mode objective wrapper
// (spec.md §4.5): `score += max(0, area(bbox(pile_bb ∪ bin_bb)) - bin_area)`.
// It tolerates slight overfit during preload rather than forbidding it
// outright, since a fixed part's position can never be adjusted to comply.
func FixedOverfit(b bin.Bin, res Result) float64 {
	binbb := b.BoundingBox()
	full := res.FullBB.Union(binbb)
	diff := full.Area() - b.Area()
	if diff > 0 {
		return res.Score + diff
	}
	return res.Score
}

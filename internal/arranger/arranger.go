// Package arranger implements the admission loop of spec.md §4.5: parts
// are offered to the placer in strict input order, every bin opened so far
// stays open and is tried in order, and a new bin is opened (offset along X
// by the bed's own width plus a fifth of it, per the source implementation's
// stride padding) the first time a part fails to fit anywhere in the
// currently open set.
package arranger

import (
	"errors"

	"github.com/nullforge/nest2d/bin"
	"github.com/nullforge/nest2d/geom"
	"github.com/nullforge/nest2d/internal/objective"
	"github.com/nullforge/nest2d/internal/pile"
	"github.com/nullforge/nest2d/internal/placer"
	"github.com/nullforge/nest2d/internal/rtree"
)

// ErrCancelled is returned when the caller's Progress hook requests early
// termination.
var ErrCancelled = errors.New("arranger: cancelled")

// Part is one item offered to the arranger, in its own local (untranslated)
// frame.
type Part struct {
	ID    string
	Local geom.Polygon
	// Fixed marks a part that is already placed (spec.md §4.5's preload
	// protocol) rather than one the arranger must find a position for.
	// FixedTranslation is meaningful only when Fixed is true.
	Fixed            bool
	FixedTranslation geom.Point
}

// Placement is the arranger's decision for one part.
type Placement struct {
	ID          string
	BinIndex    int
	Translation geom.Point
	Rotation    float64
}

// Options configures one Arrange call.
type Options struct {
	// Template is the bed shape every opened bin copies, before clearance
	// inflation.
	Template bin.Bin
	// Clearance is the full minimum required gap between any two parts
	// and between a part and the bed edge; the arranger halves it and
	// applies the half as inflation on both sides (spec.md §4.1).
	Clearance geom.Coord
	// Placer configures the candidate search's accuracy/rotation set.
	Placer placer.Config
	// Progress, if set, is called after each part is placed (or found
	// unplaceable); returning false cancels the run.
	Progress func(done, total int) bool
}

type openBin struct {
	bin       bin.Bin // clearance-inflated
	offset    geom.Point
	pile      *pile.Pile
	bigIdx    *rtree.RTree
	allIdx    *rtree.RTree
	areas     []float64
	boxes     []geom.BBox
	anyMove   bool // has a movable part been committed yet
	warmStart bool // received preloaded fixed parts; try bin center first
}

// Arranger runs the admission loop.
type Arranger struct {
	opts  Options
	place *placer.Placer
}

// New returns an Arranger configured with opts.
func New(opts Options) *Arranger {
	cfg := opts.Placer
	if cfg.Accuracy == 0 && len(cfg.Rotations) == 0 {
		cfg = placer.DefaultConfig()
	}
	return &Arranger{opts: opts, place: placer.New(cfg)}
}

func halfOf(clearance geom.Coord) geom.Coord {
	h := (clearance + 1) / 2
	if h%2 != 0 {
		h++
	}
	return h
}

// Arrange admits parts in input order, producing one Placement per part
// that could be placed. Parts that can't fit even in a freshly opened
// empty bin are reported via unplaced, not as an error, unless the caller
// cancels via Progress.
func (a *Arranger) Arrange(parts []Part) (placed []Placement, unplaced []string, err error) {
	half := halfOf(a.opts.Clearance)
	template := a.opts.Template.Inflate(-half)
	// Stride is measured off the bed's own nominal width (spec.md §4.6/§3:
	// "stride = bin_width + bin_width/5"), not the clearance-eroded
	// placement template — the clearance only ever shrinks where parts may
	// sit inside a bin, not the virtual spacing between bins in host output.
	bedWidth := a.opts.Template.BoundingBox().Width()
	stride := bedWidth + bedWidth/5

	var bins []*openBin

	newBin := func() *openBin {
		idx := len(bins)
		offset := geom.Pt(geom.Coord(idx)*stride, 0)
		ob := &openBin{
			bin:    template,
			offset: offset,
			pile:   pile.New(),
			bigIdx: rtree.New(),
			allIdx: rtree.New(),
		}
		bins = append(bins, ob)
		return ob
	}

	// Preload: fixed parts are committed to bin 0 at their given
	// world-space translation, without running the search, per spec.md
	// §4.5. A bin is opened for them even if no movable part has been
	// assigned yet. Their presence permanently reconfigures the rest of
	// this Arrange call: the first movable part seen warm-starts at the
	// preload bin's center (DONT_ALIGN), and every movable part, in every
	// bin, is scored through the overfit-tolerant fixed-part objective
	// instead of the ordinary bin-kind penalty, matching the source
	// implementation's preload() reconfiguring m_pconf for the rest of
	// execution rather than just for the preload bin.
	var hasFixed bool
	for _, pt := range parts {
		if pt.Fixed {
			hasFixed = true
			break
		}
	}
	if hasFixed {
		ob := newBin()
		ob.warmStart = true
	}
	for _, pt := range parts {
		if !pt.Fixed {
			continue
		}
		ob := bins[0]
		commitFixed(ob, pt.Local.Offset(half), pt.FixedTranslation.Sub(ob.offset))
		placed = append(placed, Placement{ID: pt.ID, BinIndex: 0, Translation: pt.FixedTranslation, Rotation: 0})
	}

	total := len(parts)
	done := 0

	for _, pt := range parts {
		if pt.Fixed {
			done++
			continue
		}

		local := pt.Local.Offset(half)
		translation, rotation, binIdx, ok := a.placeInOpenBins(bins, local, countMovableRemaining(parts, pt.ID), hasFixed)
		if !ok {
			ob := newBin()
			translation, rotation, ok = a.placeInBin(ob, local, 0, hasFixed)
			if !ok {
				unplaced = append(unplaced, pt.ID)
				done++
				if a.opts.Progress != nil && !a.opts.Progress(done, total) {
					return placed, unplaced, ErrCancelled
				}
				continue
			}
			binIdx = len(bins) - 1
		}

		ob := bins[binIdx]
		commit(ob, local, rotation, translation)
		world := translation.Add(ob.offset)
		placed = append(placed, Placement{ID: pt.ID, BinIndex: binIdx, Translation: world, Rotation: rotation})

		done++
		if a.opts.Progress != nil && !a.opts.Progress(done, total) {
			return placed, unplaced, ErrCancelled
		}
	}

	// Without fixed parts, each bin's pile is shifted as a whole so that its
	// bounding box is centered on the bin.
	if !hasFixed {
		for i, ob := range bins {
			if ob.pile.Empty() {
				continue
			}
			shift := ob.bin.Center().Sub(ob.pile.BoundingBox().Center())
			for k := range placed {
				if placed[k].BinIndex == i {
					placed[k].Translation = placed[k].Translation.Add(shift)
				}
			}
		}
	}

	return placed, unplaced, nil
}

// countMovableRemaining counts how many movable parts after id (not
// counting id itself) still need placement, which objective.Snapshot uses to
// decide between BIG_ITEM and LAST_BIG_ITEM scoring.
func countMovableRemaining(parts []Part, fromID string) int {
	found := false
	remaining := 0
	for _, p := range parts {
		if p.ID == fromID {
			found = true
			continue
		}
		if found && !p.Fixed {
			remaining++
		}
	}
	return remaining
}

func (a *Arranger) placeInOpenBins(bins []*openBin, local geom.Polygon, remaining int, fixedOverfit bool) (geom.Point, float64, int, bool) {
	for i, ob := range bins {
		if t, r, ok := a.placeInBin(ob, local, remaining, fixedOverfit); ok {
			return t, r, i, true
		}
	}
	return geom.Point{}, 0, -1, false
}

// placeInBin searches for a pose of local within ob. fixedOverfit selects
// the preload-mode objective (spec.md §4.5): once any fixed part has been
// supplied to Arrange, every movable placement for the rest of the call is
// scored through objective.FixedOverfit instead of the ordinary bin-kind
// penalty, matching the source implementation's one-way preload()
// reconfiguration.
func (a *Arranger) placeInBin(ob *openBin, local geom.Polygon, remaining int, fixedOverfit bool) (geom.Point, float64, bool) {
	if !ob.anyMove && ob.warmStart {
		center := ob.bin.Center()
		lbb := local.BoundingBox()
		t := center.Sub(lbb.Center())
		candidate := local.Transform(0, t)
		if !collidesWithAny(candidate, ob.pile.Shapes()) && ob.bin.ContainsBox(candidate.BoundingBox()) {
			return t, 0, true
		}
	}

	score := func(candidate geom.Polygon) float64 {
		snap := objective.Snapshot{
			Pile:          ob.pile,
			ItemAreas:     ob.areas,
			ItemBoxes:     ob.boxes,
			RemainingLeft: remaining,
			BigIndex:      ob.bigIdx,
			AllIndex:      ob.allIdx,
			BinArea:       ob.bin.Area(),
			BinCenter:     ob.bin.Center(),
		}
		res := objective.Evaluate(snap, candidate)
		if fixedOverfit {
			return objective.FixedOverfit(ob.bin, res)
		}
		return objective.ApplyBinPenalty(ob.bin, snap, candidate, res)
	}

	return a.place.Place(local, ob.bin, ob.pile.Shapes(), score)
}

// commit adds shape (already transformed into ob's local frame) to the
// pile, indexing it in all_rtree and, if big, big_rtree. Fixed parts go
// through commitFixed instead: spec.md §4.5 keeps them out of all_rtree
// entirely, since alignment scoring against fixed neighbors is disabled.
func commit(ob *openBin, local geom.Polygon, rotation float64, translation geom.Point) {
	shape := local.Transform(rotation, translation)
	ob.pile.Add(shape)
	ob.anyMove = true

	area := shape.Area()
	bb := shape.BoundingBox()
	idx := len(ob.areas)
	ob.areas = append(ob.areas, area)
	ob.boxes = append(ob.boxes, bb)

	ob.allIdx.Insert(bb, idx)
	if area/ob.bin.Area() > objective.BigItemThreshold {
		ob.bigIdx.Insert(bb, idx)
	}
}

func commitFixed(ob *openBin, local geom.Polygon, translation geom.Point) {
	shape := local.Transform(0, translation)
	ob.pile.Add(shape)

	area := shape.Area()
	bb := shape.BoundingBox()
	idx := len(ob.areas)
	ob.areas = append(ob.areas, area)
	ob.boxes = append(ob.boxes, bb)

	ob.bigIdx.Insert(bb, idx)
}

// collidesWithAny reports whether candidate (already in world coordinates)
// overlaps any already-committed shape: a cheap mutual vertex-containment
// test, used only by the warm-start shortcut in placeInBin. The main
// candidate search never needs this because its NFP-derived forbidden
// region rules out overlap by construction.
func collidesWithAny(candidate geom.Polygon, committed []geom.Polygon) bool {
	cbb := candidate.BoundingBox()
	for _, shape := range committed {
		if !cbb.Intersects(shape.BoundingBox()) {
			continue
		}
		for _, v := range candidate.Vertices() {
			if shape.StrictlyContainsPoint(v) {
				return true
			}
		}
		for _, v := range shape.Vertices() {
			if candidate.StrictlyContainsPoint(v) {
				return true
			}
		}
	}
	return false
}

func translateBin(b bin.Bin, offset geom.Point) bin.Bin {
	switch b.Kind {
	case bin.KindRect:
		return bin.Rect(b.Min.Add(offset), b.Max.Add(offset))
	case bin.KindDisc:
		return bin.Disc(b.Origin.Add(offset), b.Radius)
	case bin.KindPolygon:
		return bin.Poly(b.Contour.Transform(0, offset))
	default:
		return bin.Infinite(b.Origin.Add(offset))
	}
}

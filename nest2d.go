// Package nest2d is the public facade of spec.md §4.6: it accepts host
// parts expressed in millimeters, a bed hint, and a clearance, builds the
// bin and Arranger the rest of the module needs, runs the admission loop,
// and writes results back to the host via per-part callbacks exactly once
// each.
package nest2d

import (
	"errors"
	"strconv"

	"github.com/nullforge/nest2d/bin"
	"github.com/nullforge/nest2d/geom"
	"github.com/nullforge/nest2d/internal/arranger"
	"github.com/nullforge/nest2d/internal/placer"
)

// Scale is the number of scaled units per millimeter, the core's native
// fixed-point resolution (spec.md §3).
const Scale = 1_000_000

// MM is a point expressed in millimeters, the unit host callbacks use.
type MM struct{ X, Y float64 }

func toScaled(p MM) (geom.Point, error) {
	x, err := geom.CheckedScale(p.X, Scale)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := geom.CheckedScale(p.Y, Scale)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}

func toMM(p geom.Point) MM {
	return MM{X: float64(p.X) / Scale, Y: float64(p.Y) / Scale}
}

func polygonFromMM(points []MM) (geom.Polygon, error) {
	pts := make([]geom.Point, len(points))
	for i, p := range points {
		sp, err := toScaled(p)
		if err != nil {
			return geom.Polygon{}, err
		}
		pts[i] = sp
	}
	return geom.NewPolygon(pts), nil
}

// Handle is the host-application contract of spec.md §6: a movable or
// fixed part supplies its outline and initial pose, and is told the final
// one exactly once.
type Handle interface {
	// ArrangePolygon returns the part's outline (closed or open; the core
	// closes it), its initial translation and rotation.
	ArrangePolygon() (points []MM, translation MM, rotation float64)
	// ApplyArrangeResult delivers the final pose, with translation already
	// including the bin-stride X offset (spec.md §4.6).
	ApplyArrangeResult(translation MM, rotation float64)
}

// BedKind tags the variant a BedHint carries.
type BedKind int

const (
	BedBox BedKind = iota
	BedCircle
	BedIrregular
	BedInfinite
	BedUnknown
)

// BedHint mirrors the tagged bed-shape variant of spec.md §6.
type BedHint struct {
	Kind   BedKind
	Box    geom.BBox
	Circle struct {
		Center geom.Point
		Radius geom.Coord
	}
	Polyline geom.Polygon
	Origin   geom.Point
}

// HintFromOutline classifies a raw bed outline (in millimeters) via
// bin.ClassifyShape and reports it as a BedHint, for hosts that only have
// a polyline and not a pre-classified shape.
func HintFromOutline(outline []MM) (BedHint, error) {
	poly, err := polygonFromMM(outline)
	if err != nil {
		return BedHint{}, err
	}
	shape := bin.ClassifyShape(poly)
	h := BedHint{Origin: shape.Box.Center()}
	switch shape.Kind {
	case bin.KindRect:
		h.Kind = BedBox
		h.Box = shape.Box
	case bin.KindDisc:
		h.Kind = BedCircle
		h.Circle.Center = shape.Circle.Center
		h.Circle.Radius = shape.Circle.Radius
	default:
		h.Kind = BedIrregular
		h.Polyline = shape.Polygon
	}
	return h, nil
}

// ArrangeBedHint resolves a BedHint to the bin.Bin the Arranger packs
// into. Matching the source implementation's own shipped behavior (its
// Box/Circle/Irregular branches are present in source but commented out
// at the call site — see bin.ClassifyShape's doc comment and spec.md §9
// Open Question #1), every hint here currently routes to an Infinite bin
// centered on the hint's own origin/center, regardless of Kind. Hosts (and
// this module's own tests) that need a genuinely bounded bed should build
// an arranger.Options.Template directly with bin.Rect/bin.Disc/bin.Poly
// instead of going through a BedHint.
func ArrangeBedHint(hint BedHint) bin.Bin {
	switch hint.Kind {
	case BedBox:
		return bin.Infinite(hint.Box.Center())
	case BedCircle:
		return bin.Infinite(hint.Circle.Center)
	default:
		return bin.Infinite(hint.Origin)
	}
}

// ErrCancelled is returned when the caller's Progress hook requests early
// termination; callbacks already applied remain applied.
var ErrCancelled = errors.New("nest2d: cancelled")

// ErrDegenerateGeometry is returned when a handle's outline has zero area
// or fewer than three distinct vertices.
var ErrDegenerateGeometry = errors.New("nest2d: degenerate part geometry")

// Options configures one Arrange call.
type Options struct {
	// Hint selects the bed via ArrangeBedHint. Bin, if set, overrides Hint
	// and is used directly — the escape hatch for hosts that already know
	// their bed is a genuine Rect/Disc/Polygon and want that honored
	// rather than forced to Infinite.
	Hint BedHint
	Bin  *bin.Bin

	// ClearanceMM is the minimum required gap between parts and between a
	// part and the bed edge, in millimeters.
	ClearanceMM float64

	// Progress, if set, is called after each part is resolved (placed or
	// found unplaceable) with the count of parts still remaining.
	// Returning false cancels the run.
	Progress func(remaining int) bool
}

// Result is returned by Arrange: Unplaced lists the IDs (handle indices,
// movable-list-relative) of movable parts that could not be placed even
// in a freshly opened bin.
type Result struct {
	OK       bool
	Unplaced []int
}

// Arrange runs the admission loop over movable and fixed, writing results
// back via ApplyArrangeResult exactly once per handle, per spec.md §4.6.
func Arrange(movable, fixed []Handle, opts Options) (Result, error) {
	for _, h := range append(append([]Handle{}, movable...), fixed...) {
		points, _, _ := h.ArrangePolygon()
		poly, err := polygonFromMM(points)
		if err != nil {
			return Result{}, err
		}
		if poly.Area() <= 0 {
			return Result{}, ErrDegenerateGeometry
		}
	}

	var bedBin bin.Bin
	if opts.Bin != nil {
		bedBin = *opts.Bin
	} else {
		bedBin = ArrangeBedHint(opts.Hint)
	}

	clearance, err := geom.CheckedScale(opts.ClearanceMM, Scale)
	if err != nil {
		return Result{}, err
	}

	a := arranger.New(arranger.Options{
		Template:  bedBin,
		Clearance: clearance,
		Placer:    placer.DefaultConfig(),
		Progress: func(done, total int) bool {
			if opts.Progress == nil {
				return true
			}
			return opts.Progress(total - done)
		},
	})

	parts := make([]arranger.Part, 0, len(movable)+len(fixed))

	for i, h := range fixed {
		points, translation, _ := h.ArrangePolygon()
		local, err := polygonFromMM(points)
		if err != nil {
			return Result{}, err
		}
		world, err := toScaled(translation)
		if err != nil {
			return Result{}, err
		}
		parts = append(parts, arranger.Part{
			ID:               fixedID(i),
			Local:            local,
			Fixed:            true,
			FixedTranslation: world,
		})
	}
	for i, h := range movable {
		points, _, _ := h.ArrangePolygon()
		local, err := polygonFromMM(points)
		if err != nil {
			return Result{}, err
		}
		parts = append(parts, arranger.Part{ID: movableID(i), Local: local})
	}

	placed, unplaced, err := a.Arrange(parts)

	applied := make(map[int]bool, len(movable))
	for _, p := range placed {
		if i, ok := movableIndex(p.ID); ok {
			movable[i].ApplyArrangeResult(toMM(p.Translation), p.Rotation)
			applied[i] = true
		} else {
			j, _ := fixedIndex(p.ID)
			fixed[j].ApplyArrangeResult(toMM(p.Translation), p.Rotation)
		}
	}

	var result Result
	result.OK = err == nil && len(unplaced) == 0
	for _, id := range unplaced {
		if i, ok := movableIndex(id); ok {
			_, translation, rotation := movable[i].ArrangePolygon()
			movable[i].ApplyArrangeResult(translation, rotation)
			result.Unplaced = append(result.Unplaced, i)
			applied[i] = true
		}
	}

	if err != nil {
		if errors.Is(err, arranger.ErrCancelled) {
			return result, ErrCancelled
		}
		return result, err
	}
	return result, nil
}

func movableID(i int) string { return "m:" + strconv.Itoa(i) }
func fixedID(i int) string   { return "f:" + strconv.Itoa(i) }

func movableIndex(id string) (int, bool) {
	if len(id) < 2 || id[0] != 'm' {
		return 0, false
	}
	n, err := strconv.Atoi(id[2:])
	return n, err == nil
}

func fixedIndex(id string) (int, bool) {
	if len(id) < 2 || id[0] != 'f' {
		return 0, false
	}
	n, err := strconv.Atoi(id[2:])
	return n, err == nil
}

// Command nestcli is a thin host application around the nest2d facade: it
// reads a part list from an .xlsx workbook, takes the bed size from
// command-line flags, runs the arranger, and renders the resulting layout as an HTML scatter chart so a
// human can eyeball it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/nullforge/nest2d"
	"github.com/nullforge/nest2d/bin"
	"github.com/nullforge/nest2d/geom"
)

// partRow is one row of the "Parts" sheet: ID, Width, Height (mm), X, Y
// (initial translation, mm), Rotation (radians), Fixed ("true"/"false").
// Parts are rectangles; hosts with non-rectangular outlines should import
// nest2d directly instead of going through this CLI.
type partRow struct {
	id       string
	width    float64
	height   float64
	x, y     float64
	rotation float64
	fixed    bool
}

type rectHandle struct {
	row    partRow
	result nest2d.MM
	rot    float64
}

func (h *rectHandle) ArrangePolygon() ([]nest2d.MM, nest2d.MM, float64) {
	w, hh := h.row.width, h.row.height
	pts := []nest2d.MM{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: hh}, {X: 0, Y: hh}}
	return pts, nest2d.MM{X: h.row.x, Y: h.row.y}, h.row.rotation
}

func (h *rectHandle) ApplyArrangeResult(translation nest2d.MM, rotation float64) {
	h.result = translation
	h.rot = rotation
}

func main() {
	path := flag.String("in", "", "path to the input .xlsx workbook")
	out := flag.String("out", "layout.html", "path to write the rendered layout chart")
	clearance := flag.Float64("clearance", 2, "minimum clearance between parts, in millimeters")
	bedW := flag.Float64("bed-width", 1200, "bed width in millimeters")
	bedH := flag.Float64("bed-height", 1200, "bed height in millimeters")
	flag.Parse()

	if *path == "" {
		log.Fatal("nestcli: -in is required")
	}

	rows, err := readParts(*path)
	if err != nil {
		log.Fatalf("nestcli: %v", err)
	}

	var movableHandles, fixedHandles []nest2d.Handle
	var movable, fixed []*rectHandle

	for _, r := range rows {
		h := &rectHandle{row: r}
		if r.fixed {
			fixed = append(fixed, h)
			fixedHandles = append(fixedHandles, h)
		} else {
			movable = append(movable, h)
			movableHandles = append(movableHandles, h)
		}
	}

	bed := bin.Rect(
		geom.Pt(0, 0),
		geom.Pt(geom.Coord(*bedW*nest2d.Scale), geom.Coord(*bedH*nest2d.Scale)),
	)
	res, err := nest2d.Arrange(movableHandles, fixedHandles, nest2d.Options{
		Bin:         &bed,
		ClearanceMM: *clearance,
	})
	if err != nil {
		log.Fatalf("nestcli: arrange failed: %v", err)
	}
	if !res.OK {
		fmt.Fprintf(os.Stderr, "nestcli: %d part(s) could not be placed\n", len(res.Unplaced))
	}

	if err := renderLayout(*out, movable, fixed); err != nil {
		log.Fatalf("nestcli: render: %v", err)
	}
	fmt.Printf("nestcli: wrote %s\n", *out)
}

func readParts(path string) ([]partRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	out := make([]partRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		r := partRow{id: cell(row, 0)}
		if r.id == "" {
			r.id = uuid.New().String()[:8]
		}
		r.width = parseFloat(cell(row, 1))
		r.height = parseFloat(cell(row, 2))
		r.x = parseFloat(cell(row, 3))
		r.y = parseFloat(cell(row, 4))
		r.rotation = parseFloat(cell(row, 5))
		r.fixed = cell(row, 6) == "true"
		out = append(out, r)
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// renderLayout draws each part's final center point as a scatter chart,
// with one series for movable parts and one for fixed parts.
func renderLayout(path string, movable, fixed []*rectHandle) error {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "nest2d layout"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "mm", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "mm", Type: "value"}),
	)

	movedPoints := make([]opts.ScatterData, 0, len(movable))
	for _, h := range movable {
		cx := h.result.X + h.row.width/2
		cy := h.result.Y + h.row.height/2
		movedPoints = append(movedPoints, opts.ScatterData{Value: []float64{cx, cy}})
	}
	fixedPoints := make([]opts.ScatterData, 0, len(fixed))
	for _, h := range fixed {
		cx := h.result.X + h.row.width/2
		cy := h.result.Y + h.row.height/2
		fixedPoints = append(fixedPoints, opts.ScatterData{Value: []float64{cx, cy}})
	}

	sc.AddSeries("movable", movedPoints).
		AddSeries("fixed", fixedPoints)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return sc.Render(f)
}

package tables

import (
	"fmt"

	"github.com/tsawler/gridframe/grid"
	"github.com/tsawler/gridframe/model"
)

// RegionName is the registry name of the RegionDetector.
const RegionName = "region"

// RegionDetector finds tables in a grid with a bounded flood fill.
//
// The grid is scanned column by column, top to bottom. Every unvisited
// non-blank cell starts a region scan that walks right along each row and
// then down. A row keeps going through blank cells while it is still inside
// the widest column seen so far, so tables with gaps and ragged right edges
// stay in one piece. The region ends at the first row that is blank from the
// origin column up to that width, or at the bottom of the grid.
type RegionDetector struct {
	config Config
}

// NewRegionDetector creates a region detector with the default configuration.
func NewRegionDetector() *RegionDetector {
	return &RegionDetector{config: DefaultConfig()}
}

// Name returns the detector name.
func (d *RegionDetector) Name() string {
	return RegionName
}

// Configure sets the frame filter.
func (d *RegionDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Config returns the active configuration.
func (d *RegionDetector) Config() Config {
	return d.config
}

// Detect finds the frames in g, in scan order.
func (d *RegionDetector) Detect(g grid.Grid) ([]model.Frame, error) {
	ranges, err := d.Ranges(g)
	if err != nil {
		return nil, err
	}
	return Materialize(g, ranges), nil
}

// Ranges returns the bounding box of every frame in g that passes the
// configured size filter, in scan order.
func (d *RegionDetector) Ranges(g grid.Grid) ([]model.FrameRange, error) {
	if err := grid.Validate(g); err != nil {
		return nil, fmt.Errorf("detecting frames: %w", err)
	}

	all := scan(g)

	kept := make([]model.FrameRange, 0, len(all))
	for _, r := range all {
		if r.Rows() >= d.config.MinRows && r.Cols() >= d.config.MinCols {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// scan runs the region scan over the whole grid.
func scan(g grid.Grid) []model.FrameRange {
	height, width := g.Height(), g.Width()
	visited := newMask(height, width)

	var ranges []model.FrameRange
	for j := 0; j < width; j++ {
		for i := 0; i < height; i++ {
			if visited.get(i, j) {
				continue
			}
			if grid.IsBlank(g.CellText(i, j)) {
				continue
			}
			ranges = append(ranges, scanRegion(g, visited, i, j))
		}
	}
	return ranges
}

// scanRegion grows one region from the origin (i, j). Every cell it reads is
// marked visited, including cells of the trailing blank row that ends the
// region.
func scanRegion(g grid.Grid, visited *mask, i, j int) model.FrameRange {
	height, width := g.Height(), g.Width()

	ti, tj := i, j
	tjMax := j
	rowEmpty := false

	for {
		if ti >= height {
			break
		}

		if tj >= width {
			if rowEmpty {
				break
			}
			tj = j
			ti++
			rowEmpty = true
			continue
		}

		visited.set(ti, tj)

		if !grid.IsBlank(g.CellText(ti, tj)) {
			rowEmpty = false
			tj++
			if tj > tjMax {
				tjMax = tj
			}
		} else if tj < tjMax {
			tj++
		} else {
			if rowEmpty {
				break
			}
			tj = j
			ti++
			rowEmpty = true
		}
	}

	return model.FrameRange{
		Head: model.Position{Row: i, Col: j},
		Tail: model.Position{Row: ti, Col: tjMax},
	}
}

// Materialize reads the frame for each range out of g. Each row starts with
// the cell in the range's head column, followed by the cells up to the
// range's tail column.
func Materialize(g grid.Grid, ranges []model.FrameRange) []model.Frame {
	frames := make([]model.Frame, 0, len(ranges))
	for _, r := range ranges {
		frame := make(model.Frame, 0, r.Rows())
		for row := r.Head.Row; row < r.Tail.Row; row++ {
			cells := make(model.Row, 0, r.Cols())
			for col := r.Head.Col; col < r.Tail.Col; col++ {
				cells = append(cells, g.CellText(row, col))
			}
			frame = append(frame, cells)
		}
		frames = append(frames, frame)
	}
	return frames
}

// mask is the per-scan visitation buffer, stored row-major.
type mask struct {
	width int
	cells []bool
}

func newMask(height, width int) *mask {
	return &mask{width: width, cells: make([]bool, height*width)}
}

func (m *mask) get(row, col int) bool {
	return m.cells[row*m.width+col]
}

func (m *mask) set(row, col int) {
	m.cells[row*m.width+col] = true
}

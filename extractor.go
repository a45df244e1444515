package gridframe

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/tsawler/gridframe/delimited"
	"github.com/tsawler/gridframe/format"
	"github.com/tsawler/gridframe/grid"
	"github.com/tsawler/gridframe/htmldoc"
	"github.com/tsawler/gridframe/model"
	"github.com/tsawler/gridframe/normalize"
	"github.com/tsawler/gridframe/render"
	"github.com/tsawler/gridframe/tables"
	"github.com/tsawler/gridframe/xlsx"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Extractor provides a fluent interface for finding and flattening the
// tables of a grid. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a file, or a grid supplied by the caller
	filename string
	grid     grid.Grid

	// Configuration
	options ExtractOptions
	logger  *slog.Logger

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		grid:     e.grid,
		options:  e.options.clone(),
		logger:   e.logger,
		err:      e.err,
	}
}

// FrameSummary describes one detected frame.
type FrameSummary struct {
	Index int              // 0-indexed position in scan order
	Range model.FrameRange // Bounding box in the grid
	Ref   string           // Range in A1 notation
	Rows  int
	Cols  int
	Title string // Label of the first row
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Sheet selects the worksheet (XLSX) or table (HTML) to read, counting
// from 1. The default is 1.
//
// Example:
//
//	csv, err := gridframe.Open("book.xlsx").Sheet(2).CSV()
func (e *Extractor) Sheet(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		newExt.err = errors.Join(newExt.err, fmt.Errorf("sheet must be at least 1, got %d", n))
		return newExt
	}
	newExt.options.sheet = n
	return newExt
}

// SheetName selects a worksheet by name, or an HTML table by caption. It
// takes precedence over Sheet.
func (e *Extractor) SheetName(name string) *Extractor {
	newExt := e.clone()
	newExt.options.sheetName = name
	return newExt
}

// InputFormat overrides format detection.
func (e *Extractor) InputFormat(f format.Format) *Extractor {
	newExt := e.clone()
	newExt.options.inputFormat = f
	return newExt
}

// Encoding sets the character encoding of CSV and TSV input.
func (e *Extractor) Encoding(name string) *Extractor {
	newExt := e.clone()
	if err := delimited.ValidateEncoding(name); err != nil {
		newExt.err = errors.Join(newExt.err, err)
		return newExt
	}
	newExt.options.encoding = name
	return newExt
}

// Detector selects a registered frame detector by name.
func (e *Extractor) Detector(name string) *Extractor {
	newExt := e.clone()
	newExt.options.detector = name
	return newExt
}

// MinRows drops frames with fewer rows than n.
func (e *Extractor) MinRows(n int) *Extractor {
	newExt := e.clone()
	newExt.options.minRows = n
	return newExt
}

// MinCols drops frames with fewer columns than n, label column included.
func (e *Extractor) MinCols(n int) *Extractor {
	newExt := e.clone()
	newExt.options.minCols = n
	return newExt
}

// Logger sets the logger used for progress and per-frame diagnostics.
// A nil logger discards output.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	if l == nil {
		l = discardLogger
	}
	newExt.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Grid loads and returns the configured grid.
func (e *Extractor) Grid() (grid.Grid, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.grid != nil {
		return e.grid, nil
	}
	return e.load()
}

// Ranges returns the bounding box of every detected frame in scan order.
func (e *Extractor) Ranges() ([]model.FrameRange, error) {
	_, ranges, _, err := e.detect()
	return ranges, err
}

// Frames returns the detected frames in scan order.
func (e *Extractor) Frames() ([]model.Frame, error) {
	_, _, frames, err := e.detect()
	return frames, err
}

// Summaries describes every detected frame.
func (e *Extractor) Summaries() ([]FrameSummary, error) {
	_, ranges, frames, err := e.detect()
	if err != nil {
		return nil, err
	}

	out := make([]FrameSummary, len(frames))
	for i, f := range frames {
		out[i] = FrameSummary{
			Index: i,
			Range: ranges[i],
			Ref:   A1(ranges[i]),
			Rows:  f.RowCount(),
			Cols:  f.ColCount(),
		}
		if len(f) > 0 {
			out[i].Title = f[0].Label()
		}
	}
	return out, nil
}

// Table runs the full pipeline and returns the unified record set. It
// returns ErrEmptyResult when no frames are found.
//
// Example:
//
//	table, err := gridframe.Open("book.xlsx").Table()
func (e *Extractor) Table() (*model.UnifiedTable, error) {
	_, _, frames, err := e.detect()
	if err != nil {
		return nil, err
	}

	table, err := normalize.Pipeline(frames)
	if err != nil {
		return nil, err
	}
	e.logger.Info("unified frames", "records", table.Len(), "columns", len(table.Columns))
	return table, nil
}

// CSV runs the full pipeline and returns comma-separated text without a
// trailing newline.
func (e *Extractor) CSV() (string, error) {
	table, err := e.Table()
	if err != nil {
		return "", err
	}
	return render.CSV(table.Records, ",")
}

// Render runs the full pipeline and writes the result to w in format f.
// Nothing is written if any step fails.
func (e *Extractor) Render(w io.Writer, f render.Format, opts render.Options) error {
	table, err := e.Table()
	if err != nil {
		return err
	}
	return render.Write(w, f, table, opts)
}

// detect loads the grid and runs the configured detector over it.
func (e *Extractor) detect() (grid.Grid, []model.FrameRange, []model.Frame, error) {
	g, err := e.Grid()
	if err != nil {
		return nil, nil, nil, err
	}

	d := tables.GetDetector(e.options.detector)
	if d == nil {
		return nil, nil, nil, fmt.Errorf("unknown detector %q (available: %v)", e.options.detector, tables.ListDetectors())
	}
	if err := d.Configure(e.options.detectorConfig()); err != nil {
		return nil, nil, nil, fmt.Errorf("configuring detector: %w", err)
	}
	ranger, ok := d.(tables.Ranger)
	if !ok {
		return nil, nil, nil, fmt.Errorf("detector %q cannot report frame ranges", d.Name())
	}

	e.logger.Info("searching for frames", "rows", g.Height(), "cols", g.Width(), "detector", d.Name())

	ranges, err := ranger.Ranges(g)
	if err != nil {
		return nil, nil, nil, err
	}
	frames := tables.Materialize(g, ranges)

	for i, r := range ranges {
		e.logger.Debug("found frame",
			"index", i,
			"range", A1(r),
			"rows", r.Rows(),
			"cols", r.Cols(),
		)
	}
	e.logger.Info("detected frames", "count", len(frames))

	return g, ranges, frames, nil
}

// load reads the grid from the configured file.
func (e *Extractor) load() (grid.Grid, error) {
	if e.filename == "" {
		return nil, fmt.Errorf("%w: no filename specified", ErrMissingSource)
	}

	f := e.options.inputFormat
	if f == format.Unknown {
		detected, err := format.DetectFile(e.filename)
		if err != nil {
			return nil, sourceError(e.filename, err)
		}
		f = detected
	}
	e.logger.Debug("loading grid", "file", e.filename, "format", f.String())

	switch f {
	case format.XLSX:
		return e.loadXLSX()
	case format.HTML:
		return e.loadHTML()
	case format.CSV, format.TSV:
		opts := delimited.Options{Encoding: e.options.encoding}
		if f == format.TSV {
			opts.Comma = '\t'
		}
		m, err := delimited.ReadFile(e.filename, opts)
		if err != nil {
			return nil, sourceError(e.filename, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, e.filename)
	}
}

func (e *Extractor) loadXLSX() (grid.Grid, error) {
	r, err := xlsx.Open(e.filename)
	if err != nil {
		return nil, sourceError(e.filename, err)
	}
	defer r.Close()

	var sheet *xlsx.Sheet
	if e.options.sheetName != "" {
		sheet, err = r.SheetByName(e.options.sheetName)
	} else {
		sheet, err = r.Sheet(e.options.sheet - 1)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingSource, err)
	}
	e.logger.Debug("selected sheet", "name", sheet.Name, "index", sheet.Index+1)
	return sheet, nil
}

func (e *Extractor) loadHTML() (grid.Grid, error) {
	r, err := htmldoc.Open(e.filename)
	if err != nil {
		return nil, sourceError(e.filename, err)
	}
	defer r.Close()

	if e.options.sheetName != "" {
		for _, t := range r.Tables() {
			if t.Caption == e.options.sheetName {
				return t.Grid(), nil
			}
		}
		return nil, fmt.Errorf("%w: %w: no caption %q", ErrMissingSource, htmldoc.ErrTableNotFound, e.options.sheetName)
	}

	t, err := r.Table(e.options.sheet - 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingSource, err)
	}
	return t.Grid(), nil
}

// sourceError marks a missing file as ErrMissingSource and passes other
// errors through with the file name attached.
func sourceError(filename string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrMissingSource, err)
	}
	return fmt.Errorf("reading %s: %w", filename, err)
}

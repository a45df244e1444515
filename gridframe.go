// Package gridframe finds the tables inside a spreadsheet-like grid and
// flattens them into one record set.
//
// A sheet often holds several small tables side by side or stacked, with
// blank rows and columns between them. gridframe locates each table, reads
// it as label/value rows, and merges all of them into a single table whose
// columns are the sorted union of every label.
//
// Basic usage:
//
//	csv, err := gridframe.Open("report.xlsx").CSV()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	table, err := gridframe.Open("report.xlsx").
//	    SheetName("Summary").
//	    MinRows(2).
//	    Table()
//
// Grids already in memory go through Convert or FromGrid:
//
//	table, err := gridframe.Convert(grid.MustMatrix(rows))
package gridframe

import (
	"errors"
	"fmt"

	"github.com/tsawler/gridframe/grid"
	"github.com/tsawler/gridframe/model"
	"github.com/tsawler/gridframe/normalize"
	"github.com/tsawler/gridframe/xlsx"
)

var (
	// ErrMissingSource is returned when the input file, sheet or table
	// cannot be found.
	ErrMissingSource = errors.New("missing source")

	// ErrUnsupportedFormat is returned when the input format cannot be
	// determined or is not supported.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrEmptyResult is returned when no frames are found.
	ErrEmptyResult = normalize.ErrEmptyResult

	// ErrMalformedGrid is returned when a grid is not rectangular.
	ErrMalformedGrid = grid.ErrMalformedGrid

	// ErrGridTooLarge is returned when a grid spans more than grid.MaxCells
	// cells.
	ErrGridTooLarge = grid.ErrGridTooLarge
)

// Open returns an Extractor for the file at filename. The format is
// detected from the extension and, failing that, the content.
//
// Example:
//
//	csv, err := gridframe.Open("report.xlsx").CSV()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
		logger:   discardLogger,
	}
}

// FromGrid returns an Extractor over a grid already in memory. Source
// options such as Sheet or Encoding have no effect.
//
// Example:
//
//	frames, err := gridframe.FromGrid(g).Frames()
func FromGrid(g grid.Grid) *Extractor {
	e := &Extractor{
		grid:    g,
		options: defaultOptions(),
		logger:  discardLogger,
	}
	if g == nil {
		e.err = fmt.Errorf("%w: nil grid", ErrMalformedGrid)
	}
	return e
}

// Convert runs the whole pipeline over g with default options.
func Convert(g grid.Grid) (*model.UnifiedTable, error) {
	return FromGrid(g).Table()
}

// A1 returns the range as an inclusive spreadsheet reference such as
// "B2:D5".
func A1(r model.FrameRange) string {
	return xlsx.RangeRef(r.Head.Col, r.Head.Row, r.Tail.Col-1, r.Tail.Row-1)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	table := gridframe.Must(gridframe.Open("report.xlsx").Table())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

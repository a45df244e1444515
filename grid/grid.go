// Package grid defines the rectangular cell-text source consumed by the
// frame detector.
//
// A [Grid] is an immutable Height × Width snapshot of cell text in which a
// blank cell is represented by the empty string. Readers for concrete file
// formats (xlsx, html, csv) expose their content through this interface.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedGrid is returned when a grid is not a true rectangle.
	ErrMalformedGrid = errors.New("malformed grid")

	// ErrGridTooLarge is returned when a grid spans more than MaxCells cells.
	ErrGridTooLarge = errors.New("grid too large")
)

// MaxCells bounds Height × Width for a grid that can be scanned. Detection
// keeps one flag per cell.
const MaxCells = 1 << 26

// Grid is a read-only rectangular source of cell text.
type Grid interface {
	// Height returns the number of rows.
	Height() int

	// Width returns the number of columns.
	Width() int

	// CellText returns the text at (row, col), or "" for a blank cell.
	// Callers must stay within 0 <= row < Height() and 0 <= col < Width().
	CellText(row, col int) string
}

// Validator is implemented by grids that can check their own shape.
type Validator interface {
	Validate() error
}

// Validate checks that g reports sane dimensions within MaxCells. If g implements
// [Validator], its own check runs as well.
func Validate(g Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrMalformedGrid)
	}
	if g.Height() < 0 || g.Width() < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrMalformedGrid, g.Height(), g.Width())
	}
	if cells := int64(g.Height()) * int64(g.Width()); cells > MaxCells {
		return fmt.Errorf("%w: %dx%d is %d cells, limit %d", ErrGridTooLarge, g.Height(), g.Width(), cells, MaxCells)
	}
	if v, ok := g.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// IsBlank reports whether s counts as an empty cell.
func IsBlank(s string) bool {
	return s == ""
}

// Dump renders g as tab-separated lines, with blank cells shown as "·".
// It is intended for debug logging and test failure messages.
func Dump(g Grid) string {
	var sb strings.Builder
	for i := 0; i < g.Height(); i++ {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j := 0; j < g.Width(); j++ {
			if j > 0 {
				sb.WriteString("\t")
			}
			text := g.CellText(i, j)
			if IsBlank(text) {
				text = "·"
			}
			sb.WriteString(text)
		}
	}
	return sb.String()
}

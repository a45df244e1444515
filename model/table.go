package model

import "fmt"

// Position addresses a grid cell by zero-based row and column.
type Position struct {
	Row int
	Col int
}

// FrameRange is the bounding box of one detected table.
//
// Head is the origin cell. Tail is exclusive on both axes: Tail.Row is the
// first row after the table and Tail.Col is one past the widest column any
// row of the table reached. The region inside the box may be a staircase
// rather than a filled rectangle.
type FrameRange struct {
	Head Position
	Tail Position
}

// Rows returns the number of grid rows covered by the range.
func (r FrameRange) Rows() int {
	return r.Tail.Row - r.Head.Row
}

// Cols returns the number of grid columns covered by the range.
func (r FrameRange) Cols() int {
	return r.Tail.Col - r.Head.Col
}

// Contains reports whether (row, col) lies inside the range.
func (r FrameRange) Contains(row, col int) bool {
	return row >= r.Head.Row && row < r.Tail.Row &&
		col >= r.Head.Col && col < r.Tail.Col
}

// Overlaps reports whether two ranges share at least one cell.
func (r FrameRange) Overlaps(o FrameRange) bool {
	return r.Head.Row < o.Tail.Row && o.Head.Row < r.Tail.Row &&
		r.Head.Col < o.Tail.Col && o.Head.Col < r.Tail.Col
}

// String returns the range in zero-based (row,col) notation.
func (r FrameRange) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Head.Row, r.Head.Col, r.Tail.Row, r.Tail.Col)
}

// Row is one table row: a label cell followed by value cells.
type Row []string

// Label returns the leftmost cell of the row.
func (r Row) Label() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Values returns the cells after the label.
func (r Row) Values() []string {
	if len(r) < 2 {
		return nil
	}
	return r[1:]
}

// Value returns the first value cell, or "" if the row only has a label.
func (r Row) Value() string {
	if len(r) < 2 {
		return ""
	}
	return r[1]
}

// Frame is a detected table: an ordered sequence of rows.
type Frame []Row

// RowCount returns the number of rows.
func (f Frame) RowCount() int {
	return len(f)
}

// ColCount returns the number of cells in the first row.
func (f Frame) ColCount() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	if f == nil {
		return nil
	}
	out := make(Frame, len(f))
	for i, row := range f {
		out[i] = append(Row(nil), row...)
	}
	return out
}

// Record reads the frame as a list of (label, value) fields, one per row.
// Cells beyond the first value are ignored.
func (f Frame) Record() Record {
	rec := make(Record, len(f))
	for i, row := range f {
		rec[i] = Field{Name: row.Label(), Value: row.Value()}
	}
	return rec
}

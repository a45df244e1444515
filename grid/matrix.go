package grid

import "fmt"

// Matrix is an in-memory [Grid] backed by a slice of rows.
type Matrix struct {
	rows  [][]string
	width int
}

// NewMatrix builds a Matrix from rows. Every row must have the same length,
// otherwise ErrMalformedGrid is returned. The rows are copied.
func NewMatrix(rows [][]string) (*Matrix, error) {
	m := &Matrix{rows: make([][]string, len(rows))}
	if len(rows) > 0 {
		m.width = len(rows[0])
	}
	for i, row := range rows {
		m.rows[i] = append([]string(nil), row...)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MustMatrix is like NewMatrix but panics on a malformed input.
// It is intended for tests and literals.
func MustMatrix(rows [][]string) *Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Pad builds a Matrix from ragged rows by extending every row with blank
// cells up to the longest row's length.
func Pad(rows [][]string) *Matrix {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	m := &Matrix{rows: make([][]string, len(rows)), width: width}
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		m.rows[i] = padded
	}
	return m
}

// Height returns the number of rows.
func (m *Matrix) Height() int {
	return len(m.rows)
}

// Width returns the number of columns.
func (m *Matrix) Width() int {
	return m.width
}

// CellText returns the text at (row, col).
func (m *Matrix) CellText(row, col int) string {
	return m.rows[row][col]
}

// Rows returns a copy of the matrix content.
func (m *Matrix) Rows() [][]string {
	out := make([][]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Validate checks that all rows share the matrix width.
func (m *Matrix) Validate() error {
	for i, row := range m.rows {
		if len(row) != m.width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, i, len(row), m.width)
		}
	}
	return nil
}

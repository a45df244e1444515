package htmldoc

import "github.com/tsawler/gridframe/grid"

// ParsedTable represents a table extracted from HTML.
type ParsedTable struct {
	Caption   string
	Rows      [][]TableCell
	HasHeader bool
}

// TableCell represents a cell in an HTML table.
type TableCell struct {
	Text     string
	IsHeader bool
	RowSpan  int
	ColSpan  int
}

// Grid lays the table out on a rectangular grid. A cell spanning several
// rows or columns fills every slot it covers with its text, and short rows
// are padded with blanks. A column span that runs into a slot held by a row
// span from above is cut short there.
func (t *ParsedTable) Grid() *grid.Matrix {
	var rows [][]string
	// pending[col] counts the rows still covered by a rowspan from above.
	var pending []int
	var pendingText []string

	ensure := func(row, width int) {
		for len(rows) <= row {
			rows = append(rows, nil)
		}
		for len(rows[row]) < width {
			rows[row] = append(rows[row], "")
		}
		for len(pending) < width {
			pending = append(pending, 0)
			pendingText = append(pendingText, "")
		}
	}

	for r, cells := range t.Rows {
		ensure(r, 0)
		col := 0
		next := func() {
			for col < len(pending) && pending[col] > 0 {
				ensure(r, col+1)
				rows[r][col] = pendingText[col]
				pending[col]--
				col++
			}
		}

		for _, cell := range cells {
			next()
			rowSpan, colSpan := max(cell.RowSpan, 1), max(cell.ColSpan, 1)
			ensure(r, col+colSpan)
			// A colspan stops at a slot still held by a rowspan from above.
			placed := 0
			for ; placed < colSpan && pending[col+placed] == 0; placed++ {
				rows[r][col+placed] = cell.Text
				if rowSpan > 1 {
					pending[col+placed] = rowSpan - 1
					pendingText[col+placed] = cell.Text
				}
			}
			col += placed
		}

		// Spans from above that sit right of the last cell.
		for c := col; c < len(pending); c++ {
			if pending[c] > 0 {
				ensure(r, c+1)
				rows[r][c] = pendingText[c]
				pending[c]--
			}
		}
	}

	return grid.Pad(rows)
}

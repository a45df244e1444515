package xlsx

import (
	"fmt"
	"strconv"
	"strings"
)

// CellType represents the type of data in a cell.
type CellType int

const (
	// CellTypeString indicates a string value.
	CellTypeString CellType = iota
	// CellTypeNumber indicates a numeric value.
	CellTypeNumber
	// CellTypeBoolean indicates a boolean value.
	CellTypeBoolean
	// CellTypeFormula indicates a formula without a cached result.
	CellTypeFormula
	// CellTypeError indicates an error value.
	CellTypeError
	// CellTypeEmpty indicates a cell element with no value.
	CellTypeEmpty
)

// Cell represents a cell present in the worksheet XML.
type Cell struct {
	Value    string   // The cell's display value
	RawValue string   // The raw value from XML
	Type     CellType // The type of data
	Row      int      // 0-indexed row
	Col      int      // 0-indexed column
	Formula  string   // Formula if present
}

// cellPos addresses a cell by zero-based row and column.
type cellPos struct {
	row, col int
}

// Sheet represents a worksheet in the workbook. It implements grid.Grid,
// reading every cell as its display text.
//
// Only cells present in the worksheet XML are stored. The grid spans from
// A1 to the last row and column holding a cell; every other position reads
// as blank.
type Sheet struct {
	Name  string
	Index int

	// Merged cell regions
	MergedRegions []MergedRegion

	height int
	width  int
	cells  map[cellPos]*Cell

	// mergesByRow lists, per row inside the used range, the indexes of the
	// merged regions covering that row.
	mergesByRow map[int][]int
}

// MergedRegion represents a merged cell region. End coordinates are
// inclusive.
type MergedRegion struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Contains reports whether (row, col) lies inside the region.
func (m MergedRegion) Contains(row, col int) bool {
	return row >= m.StartRow && row <= m.EndRow && col >= m.StartCol && col <= m.EndCol
}

// Cell returns the cell at the given row and column (0-indexed).
// Returns nil if the worksheet holds no cell there.
func (s *Sheet) Cell(row, col int) *Cell {
	return s.cells[cellPos{row, col}]
}

// MergeAt returns the merged region covering (row, col), if any.
func (s *Sheet) MergeAt(row, col int) (MergedRegion, bool) {
	for _, i := range s.mergesByRow[row] {
		if mr := s.MergedRegions[i]; mr.Contains(row, col) {
			return mr, true
		}
	}
	return MergedRegion{}, false
}

// Height returns the number of rows up to the last row holding a cell.
func (s *Sheet) Height() int {
	return s.height
}

// Width returns the number of columns up to the last column holding a cell.
func (s *Sheet) Width() int {
	if s.height == 0 {
		return 0
	}
	return s.width
}

// CellText returns the display text at (row, col). Cells covered by a merged
// region read as the text of the region's top-left cell.
func (s *Sheet) CellText(row, col int) string {
	if mr, ok := s.MergeAt(row, col); ok {
		row, col = mr.StartRow, mr.StartCol
	}
	if c := s.Cell(row, col); c != nil {
		return c.Value
	}
	return ""
}

// indexMerges records, for each row of the used range, which merged regions
// cover it. Rows past the used range are never read.
func (s *Sheet) indexMerges() {
	s.mergesByRow = make(map[int][]int)
	for i, mr := range s.MergedRegions {
		if mr.StartCol >= s.width {
			continue
		}
		for row := max(mr.StartRow, 0); row <= mr.EndRow && row < s.height; row++ {
			s.mergesByRow[row] = append(s.mergesByRow[row], i)
		}
	}
}

// ParseCellRef parses a cell reference like "A1" or "AA100" into column and row indices (0-indexed).
func ParseCellRef(ref string) (col, row int, err error) {
	if ref == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}

	// Find where letters end and numbers begin
	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}

	if i == 0 {
		return 0, 0, fmt.Errorf("invalid cell reference: no column letters")
	}
	if i == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference: no row number")
	}

	colPart := ref[:i]
	rowPart := ref[i:]

	// Parse column (A=0, B=1, ..., Z=25, AA=26, etc.)
	col = ColumnToIndex(colPart)
	if col < 0 {
		return 0, 0, fmt.Errorf("invalid column: %s", colPart)
	}

	// Parse row (1-indexed in Excel, convert to 0-indexed)
	rowNum, err := strconv.Atoi(rowPart)
	if err != nil || rowNum < 1 {
		return 0, 0, fmt.Errorf("invalid row: %s", rowPart)
	}
	row = rowNum - 1

	return col, row, nil
}

// ColumnToIndex converts a column letter(s) to a 0-indexed column number.
// A=0, B=1, ..., Z=25, AA=26, AB=27, etc.
func ColumnToIndex(col string) int {
	col = strings.ToUpper(col)
	result := 0
	for _, c := range col {
		if c < 'A' || c > 'Z' {
			return -1
		}
		result = result*26 + int(c-'A') + 1
	}
	return result - 1
}

// IndexToColumn converts a 0-indexed column number to column letter(s).
// 0=A, 1=B, ..., 25=Z, 26=AA, 27=AB, etc.
func IndexToColumn(index int) string {
	if index < 0 {
		return ""
	}

	result := ""
	index++ // Convert to 1-indexed for calculation
	for index > 0 {
		index-- // Adjust for 0-based modulo
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}

// CellRef creates a cell reference string from column and row indices (0-indexed).
func CellRef(col, row int) string {
	return fmt.Sprintf("%s%d", IndexToColumn(col), row+1)
}

// RangeRef creates an A1-style range such as "B2:D5" from inclusive
// 0-indexed corners.
func RangeRef(startCol, startRow, endCol, endRow int) string {
	return CellRef(startCol, startRow) + ":" + CellRef(endCol, endRow)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// ParseRangeRef parses a range reference like "A1:D10" into start and end coordinates.
func ParseRangeRef(ref string) (startCol, startRow, endCol, endRow int, err error) {
	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range reference: %s", ref)
	}

	startCol, startRow, err = ParseCellRef(parts[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid start cell: %w", err)
	}

	endCol, endRow, err = ParseCellRef(parts[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid end cell: %w", err)
	}

	return startCol, startRow, endCol, endRow, nil
}

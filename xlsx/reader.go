// Package xlsx reads worksheets from XLSX (Office Open XML Spreadsheet)
// workbooks as grids of cell text.
package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrInvalidWorkbook is returned when the archive is not a readable
	// XLSX workbook.
	ErrInvalidWorkbook = errors.New("invalid xlsx workbook")

	// ErrSheetNotFound is returned when a requested sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// Reader provides access to the worksheets of an XLSX workbook.
type Reader struct {
	zipReader     *zip.Reader
	closer        io.Closer
	workbook      *workbookXML
	sharedStrings []string
	sheets        []*Sheet
	sheetRels     map[string]string // RID -> target path
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	r, err := newReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// OpenBytes reads an XLSX workbook held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	return newReader(bytes.NewReader(data), int64(len(data)))
}

func newReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %v", ErrInvalidWorkbook, err)
	}

	r := &Reader{
		zipReader: zr,
		sheetRels: make(map[string]string),
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("%w: parsing relationships: %v", ErrInvalidWorkbook, err)
	}

	if err := r.parseWorkbook(); err != nil {
		return nil, fmt.Errorf("%w: parsing workbook: %v", ErrInvalidWorkbook, err)
	}

	// Shared strings are optional; workbooks with only numbers or inline
	// strings omit them.
	_ = r.parseSharedStrings()

	if err := r.parseWorksheets(); err != nil {
		return nil, fmt.Errorf("%w: parsing worksheets: %v", ErrInvalidWorkbook, err)
	}

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required XLSX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"xl/workbook.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("%w: missing required file: %s", ErrInvalidWorkbook, name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseRelationships maps relationship IDs to worksheet paths.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil // Relationships are optional
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}

	for _, rel := range rels.Relationship {
		r.sheetRels[rel.ID] = rel.Target
	}
	return nil
}

// parseWorkbook parses the main workbook file.
func (r *Reader) parseWorkbook() error {
	data, err := r.getFileContent("xl/workbook.xml")
	if err != nil {
		return err
	}

	r.workbook = &workbookXML{}
	return xml.Unmarshal(data, r.workbook)
}

// parseSharedStrings parses the shared strings table.
func (r *Reader) parseSharedStrings() error {
	data, err := r.getFileContent("xl/sharedStrings.xml")
	if err != nil {
		return err
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return err
	}

	r.sharedStrings = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			r.sharedStrings[i] = si.T
			continue
		}
		// Rich text: concatenate all runs
		var text strings.Builder
		for _, run := range si.R {
			text.WriteString(run.T)
		}
		r.sharedStrings[i] = text.String()
	}
	return nil
}

// sheetPath resolves the archive path of the i-th worksheet.
func (r *Reader) sheetPath(i int, ref sheetRefXML) string {
	target := r.sheetRels[ref.RID]
	if target == "" {
		target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if !strings.HasPrefix(target, "xl/") {
		target = "xl/" + target
	}
	return target
}

// parseWorksheets parses every worksheet listed in the workbook. Sheets
// that cannot be read are skipped.
func (r *Reader) parseWorksheets() error {
	r.sheets = make([]*Sheet, 0, len(r.workbook.Sheets.Sheet))

	for i, ref := range r.workbook.Sheets.Sheet {
		data, err := r.getFileContent(r.sheetPath(i, ref))
		if err != nil {
			continue
		}

		sheet, err := r.parseWorksheet(data, ref.Name, len(r.sheets))
		if err != nil {
			continue
		}
		r.sheets = append(r.sheets, sheet)
	}

	if len(r.sheets) == 0 {
		return fmt.Errorf("no worksheets found")
	}
	return nil
}

// parseWorksheet parses a single worksheet. Cells are stored sparsely, so
// the cost follows the number of cells rather than the used range.
func (r *Reader) parseWorksheet(data []byte, name string, index int) (*Sheet, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Name:  name,
		Index: index,
	}

	// Resolve positions first. Rows and cells may omit their r attribute,
	// in which case they follow the previous one.
	type placed struct {
		row, col int
		xml      cellXML
	}
	var cells []placed
	maxRow, maxCol := 0, -1
	rowNum := 0
	for _, row := range ws.SheetData.Rows {
		if row.R > 0 {
			rowNum = row.R
		} else {
			rowNum++
		}
		col := -1
		for _, c := range row.Cells {
			if c.R != "" {
				parsed, _, err := ParseCellRef(c.R)
				if err != nil {
					continue
				}
				col = parsed
			} else {
				col++
			}
			cells = append(cells, placed{row: rowNum - 1, col: col, xml: c})
			if col > maxCol {
				maxCol = col
			}
		}
		if rowNum > maxRow {
			maxRow = rowNum
		}
	}

	if ws.MergeCells != nil {
		for _, mc := range ws.MergeCells.MergeCell {
			startCol, startRow, endCol, endRow, err := ParseRangeRef(mc.Ref)
			if err != nil {
				continue
			}
			sheet.MergedRegions = append(sheet.MergedRegions, MergedRegion{
				StartRow: startRow,
				StartCol: startCol,
				EndRow:   endRow,
				EndCol:   endCol,
			})
		}
	}

	sheet.height = maxRow
	sheet.width = maxCol + 1
	sheet.cells = make(map[cellPos]*Cell, len(cells))
	for _, p := range cells {
		cell := &Cell{Row: p.row, Col: p.col, Type: CellTypeEmpty}
		r.fillCell(cell, p.xml)
		sheet.cells[cellPos{p.row, p.col}] = cell
	}

	sheet.indexMerges()
	return sheet, nil
}

// fillCell sets the type and display text of a cell from its XML.
func (r *Reader) fillCell(cell *Cell, c cellXML) {
	cell.RawValue = c.V
	cell.Formula = c.F

	switch c.T {
	case "s": // Shared string
		cell.Type = CellTypeString
		idx, err := strconv.Atoi(c.V)
		if err == nil && idx >= 0 && idx < len(r.sharedStrings) {
			cell.Value = r.sharedStrings[idx]
		}
	case "b":
		cell.Type = CellTypeBoolean
		if c.V == "1" {
			cell.Value = "TRUE"
		} else {
			cell.Value = "FALSE"
		}
	case "e":
		cell.Type = CellTypeError
		cell.Value = c.V
	case "str": // Formula with a string result
		cell.Type = CellTypeString
		cell.Value = c.V
	case "inlineStr":
		cell.Type = CellTypeString
		if c.Is != nil {
			cell.Value = c.Is.text()
		}
	default: // Number or empty
		if c.V != "" {
			cell.Type = CellTypeNumber
			cell.Value = c.V
		} else if c.F != "" {
			cell.Type = CellTypeFormula
		}
	}
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all sheets.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("%w: index %d out of range (0-%d)", ErrSheetNotFound, index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for _, s := range r.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

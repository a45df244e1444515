// Package xlsxtest builds small XLSX workbooks for tests.
package xlsxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Sheet is one worksheet of a test workbook. XML is the full worksheet part.
type Sheet struct {
	Name string
	XML  string
}

// Rows returns a worksheet part holding rows as inline strings. Blank cells
// are omitted, as spreadsheet applications do. Merges are A1-style ranges.
func Rows(rows [][]string, merges ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>`)
	for i, row := range rows {
		fmt.Fprintf(&b, "\n  <row r=\"%d\">", i+1)
		for j, v := range row {
			if v == "" {
				continue
			}
			fmt.Fprintf(&b, `<c r="%s%d" t="inlineStr"><is><t>%s</t></is></c>`, column(j), i+1, escape(v))
		}
		b.WriteString("</row>")
	}
	b.WriteString("\n</sheetData>")
	if len(merges) > 0 {
		fmt.Fprintf(&b, "\n<mergeCells count=\"%d\">", len(merges))
		for _, m := range merges {
			fmt.Fprintf(&b, `<mergeCell ref="%s"/>`, m)
		}
		b.WriteString("</mergeCells>")
	}
	b.WriteString("\n</worksheet>")
	return b.String()
}

// Build returns the bytes of a workbook holding sheets in order.
func Build(t testing.TB, sheets []Sheet, sharedStrings []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var overrides strings.Builder
	for i := range sheets {
		fmt.Fprintf(&overrides, "\n  <Override PartName=\"/xl/worksheets/sheet%d.xml\" ContentType=\"application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml\"/>", i+1)
	}
	write(t, zw, "[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>`+
		overrides.String()+`
</Types>`)

	write(t, zw, "_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`)

	var rels, refs strings.Builder
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>`)
	for i, s := range sheets {
		fmt.Fprintf(&rels, "\n  <Relationship Id=\"rId%d\" Type=\"http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet\" Target=\"worksheets/sheet%d.xml\"/>", i+2, i+1)
		fmt.Fprintf(&refs, "\n  <sheet name=\"%s\" sheetId=\"%d\" r:id=\"rId%d\"/>", escape(s.Name), i+1, i+2)
	}
	rels.WriteString("\n</Relationships>")
	write(t, zw, "xl/_rels/workbook.xml.rels", rels.String())

	write(t, zw, "xl/workbook.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets>`+refs.String()+`
</sheets>
</workbook>`)

	var ss strings.Builder
	fmt.Fprintf(&ss, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`, len(sharedStrings), len(sharedStrings))
	for _, s := range sharedStrings {
		fmt.Fprintf(&ss, "\n  <si><t>%s</t></si>", escape(s))
	}
	ss.WriteString("\n</sst>")
	write(t, zw, "xl/sharedStrings.xml", ss.String())

	for i, s := range sheets {
		write(t, zw, fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1), s.XML)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// WriteFile builds a workbook into a temporary directory and returns its
// path. The file is removed when the test ends.
func WriteFile(t testing.TB, sheets []Sheet, sharedStrings []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(path, Build(t, sheets, sharedStrings), 0o600); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return path
}

// Zip writes the named parts into an archive. It is used to build broken
// workbooks.
func Zip(t testing.TB, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		write(t, zw, name, content)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func write(t testing.TB, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// column converts a 0-indexed column number to letters.
func column(index int) string {
	result := ""
	index++
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}

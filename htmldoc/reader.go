// Package htmldoc reads the tables of an HTML document as grids of cell
// text.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrTableNotFound is returned when a requested table does not exist.
var ErrTableNotFound = errors.New("table not found")

// Reader provides access to the tables of an HTML document.
type Reader struct {
	title  string
	tables []*ParsedTable
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{}
	if title := findElement(doc, "title"); title != nil {
		reader.title = getTextContent(title)
	}
	reader.collectTables(doc)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the document title, if any.
func (r *Reader) Title() string {
	return r.title
}

// TableCount returns the number of tables in the document.
func (r *Reader) TableCount() int {
	return len(r.tables)
}

// Tables returns every table in document order. Nested tables follow the
// table that contains them.
func (r *Reader) Tables() []*ParsedTable {
	return r.tables
}

// Table returns the table at the given index (0-indexed).
func (r *Reader) Table(index int) (*ParsedTable, error) {
	if index < 0 || index >= len(r.tables) {
		if len(r.tables) == 0 {
			return nil, fmt.Errorf("%w: document has no tables", ErrTableNotFound)
		}
		return nil, fmt.Errorf("%w: index %d out of range (0-%d)", ErrTableNotFound, index, len(r.tables)-1)
	}
	return r.tables[index], nil
}

// collectTables walks the document and parses every table element.
func (r *Reader) collectTables(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "table" {
			r.tables = append(r.tables, parseTable(n))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.collectTables(c)
	}
}

// parseTable extracts a table from an HTML table element.
func parseTable(tableNode *html.Node) *ParsedTable {
	table := &ParsedTable{
		Rows: make([][]TableCell, 0),
	}

	if caption := childElement(tableNode, "caption"); caption != nil {
		table.Caption = getTextContent(caption)
	}

	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead":
			table.HasHeader = true
			parseTableRows(c, table, true)
		case "tbody", "tfoot":
			parseTableRows(c, table, false)
		case "tr":
			table.Rows = append(table.Rows, parseTableRow(c, false))
		}
	}

	// If no explicit header but first row has th elements, mark as header
	if !table.HasHeader && len(table.Rows) > 0 {
		for _, cell := range table.Rows[0] {
			if cell.IsHeader {
				table.HasHeader = true
				break
			}
		}
	}

	return table
}

// parseTableRows parses rows within thead, tbody or tfoot.
func parseTableRows(section *html.Node, table *ParsedTable, isHeader bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			table.Rows = append(table.Rows, parseTableRow(c, isHeader))
		}
	}
}

// parseTableRow parses a single table row. Empty rows are kept so that
// blank separator rows survive into the grid.
func parseTableRow(tr *html.Node, isHeader bool) []TableCell {
	row := make([]TableCell, 0)

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cell := TableCell{
				Text:     normalizeSpace(getTextContent(c)),
				IsHeader: isHeader || c.Data == "th",
				RowSpan:  1,
				ColSpan:  1,
			}

			for _, attr := range c.Attr {
				switch attr.Key {
				case "rowspan":
					cell.RowSpan = parseSpan(attr.Val)
				case "colspan":
					cell.ColSpan = parseSpan(attr.Val)
				}
			}

			row = append(row, cell)
		}
	}

	return row
}

// maxSpan caps rowspan and colspan. Browsers clamp colspan at 1000 and
// rowspan at 65534; a lower shared cap keeps hostile input from
// allocating huge grids.
const maxSpan = 1000

// parseSpan reads a span attribute. Missing, zero or malformed values
// count as 1.
func parseSpan(val string) int {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxSpan {
		return maxSpan
	}
	return n
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// childElement returns the first direct element child of n with the given
// tag name. Captions of nested tables are not children of the outer table.
func childElement(n *html.Node, tagName string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tagName {
			return c
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
			result.WriteString(" ")
		}
	}
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

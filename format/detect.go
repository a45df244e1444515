// Package format identifies the kind of file a grid is loaded from.
package format

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// HTML indicates an HTML document.
	HTML
	// CSV indicates comma-separated text.
	CSV
	// TSV indicates tab-separated text.
	TSV
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case XLSX:
		return "XLSX"
	case HTML:
		return "HTML"
	case CSV:
		return "CSV"
	case TSV:
		return "TSV"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XLSX:
		return ".xlsx"
	case HTML:
		return ".html"
	case CSV:
		return ".csv"
	case TSV:
		return ".tsv"
	default:
		return ""
	}
}

// Parse resolves a format name such as "xlsx" or "csv". "auto" and the
// empty string map to Unknown, meaning the format should be detected.
func Parse(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Unknown, nil
	case "xlsx":
		return XLSX, nil
	case "html", "htm":
		return HTML, nil
	case "csv":
		return CSV, nil
	case "tsv", "tab":
		return TSV, nil
	}
	return Unknown, fmt.Errorf("unknown input format %q", name)
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return XLSX
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".csv":
		return CSV
	case ".tsv", ".tab":
		return TSV
	default:
		return Unknown
	}
}

// DetectFile determines the format of the file at path, first from its
// extension and then from its content.
func DetectFile(path string) (Format, error) {
	if f := Detect(path); f != Unknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Unknown, err
	}
	return DetectFromReader(file, info.Size())
}

// DetectFromMagic checks file magic bytes to determine format.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic: PK\x03\x04. Could be any OOXML format, so the caller
	// should use DetectFromReader.
	if isZIP(data) {
		return Unknown
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

func isZIP(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	// Trim leading whitespace and a UTF-8 byte order mark
	text := strings.TrimLeft(strings.TrimPrefix(string(data), "\xef\xbb\xbf"), " \t\r\n")
	if text == "" {
		return false
	}

	upper := strings.ToUpper(text)
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") || strings.HasPrefix(upper, "<TABLE") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// DetectFromReader inspects the content to determine format. It can tell
// an XLSX workbook from other ZIP-based formats.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isZIP(magic) {
		return detectZIPFormat(r, size)
	}

	if detectHTMLMagic(magic) {
		return HTML, nil
	}

	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive for spreadsheet parts.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return XLSX, nil
		}
	}

	return Unknown, nil
}

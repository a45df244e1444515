// Package config provides configuration management for the gridframe CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	File        string `koanf:"file"`
	Sheet       int    `koanf:"sheet"`
	SheetName   string `koanf:"sheet_name"`
	InputFormat string `koanf:"input_format"`
	Encoding    string `koanf:"encoding"`
	Output      string `koanf:"output"`
	Delimiter   string `koanf:"delimiter"`
	MinRows     int    `koanf:"min_rows"`
	MinCols     int    `koanf:"min_cols"`
	AllowEmpty  bool   `koanf:"allow_empty"`
	Verbose     bool   `koanf:"verbose"`
	LogFormat   string `koanf:"log_format"`
}

// Default configuration values.
const (
	DefaultSheet       = 1
	DefaultInputFormat = "auto"
	DefaultEncoding    = "utf-8"
	DefaultOutput      = "csv"
	DefaultDelimiter   = ","
	DefaultMinRows     = 1
	DefaultMinCols     = 1
	DefaultLogFormat   = "text"

	// OutputAuto picks a table on a terminal and csv otherwise.
	OutputAuto = "auto"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Defaults returns the default configuration as a koanf key map.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"file":         "",
		"sheet":        DefaultSheet,
		"sheet_name":   "",
		"input_format": DefaultInputFormat,
		"encoding":     DefaultEncoding,
		"output":       DefaultOutput,
		"delimiter":    DefaultDelimiter,
		"min_rows":     DefaultMinRows,
		"min_cols":     DefaultMinCols,
		"allow_empty":  false,
		"verbose":      false,
		"log_format":   DefaultLogFormat,
	}
}

// Package cli provides the command-line interface for gridframe.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tsawler/gridframe"
	"github.com/tsawler/gridframe/format"
	"github.com/tsawler/gridframe/internal/cli/config"
	"github.com/tsawler/gridframe/render"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command. Running it with a file
// converts that file and prints the unified table.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "gridframe [file]",
		Short: "Flatten the tables of a spreadsheet into one record set",
		Long: `gridframe finds every table in a spreadsheet-like grid and merges them
into a single table.

Each table is read as label/value rows. Its first row names the table and
becomes the Title column; every other label becomes a column. The output has
one record per table, with columns sorted by name.

Input can be xlsx, html, csv or tsv.`,
		Args:    cobra.MaximumNArgs(1),
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg)
			if used := config.GetConfigFileUsed(); used != "" {
				logger.Debug("using config file", "path", used)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)
			return nil
		},
		RunE:          runConvert,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gridframe.yaml)")
	rootCmd.PersistentFlags().String("file", "", "input file (a positional argument wins)")
	rootCmd.PersistentFlags().Int("sheet", config.DefaultSheet, "1-based sheet (xlsx) or table (html) to read")
	rootCmd.PersistentFlags().String("sheet-name", "", "sheet name (xlsx) or table caption (html) to read")
	rootCmd.PersistentFlags().String("input-format", config.DefaultInputFormat, "input format (auto|xlsx|html|csv|tsv)")
	rootCmd.PersistentFlags().String("encoding", config.DefaultEncoding, "encoding of csv/tsv input (utf-8|latin1|windows-1252)")
	rootCmd.PersistentFlags().Int("min-rows", config.DefaultMinRows, "drop tables with fewer rows")
	rootCmd.PersistentFlags().Int("min-cols", config.DefaultMinCols, "drop tables with fewer columns")
	rootCmd.PersistentFlags().Bool("allow-empty", false, "print nothing and succeed when no tables are found")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (text|json)")

	rootCmd.Flags().StringP("output", "o", config.DefaultOutput, "output format (csv|tsv|markdown|json|yaml|table|auto)")
	rootCmd.Flags().String("delimiter", config.DefaultDelimiter, "csv field delimiter")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := []string{config.OutputAuto}
		for _, f := range render.Formats() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewFramesCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Sheet:       config.DefaultSheet,
		InputFormat: config.DefaultInputFormat,
		Encoding:    config.DefaultEncoding,
		Output:      config.DefaultOutput,
		Delimiter:   config.DefaultDelimiter,
		MinRows:     config.DefaultMinRows,
		MinCols:     config.DefaultMinCols,
		LogFormat:   config.DefaultLogFormat,
	}
}

// runConvert converts the input file and writes the unified table.
func runConvert(cmd *cobra.Command, args []string) error {
	cfg := GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	e, err := newExtractor(cfg, args)
	if err != nil {
		return err
	}

	out, err := outputFormat(cfg.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	err = e.Logger(logger).Render(cmd.OutOrStdout(), out, render.Options{Delimiter: cfg.Delimiter})
	if errors.Is(err, gridframe.ErrEmptyResult) && cfg.AllowEmpty {
		logger.Warn("no tables found")
		return nil
	}
	return err
}

// newExtractor builds an extractor for the input named by args or
// cfg.File.
func newExtractor(cfg *config.Config, args []string) (*gridframe.Extractor, error) {
	file := cfg.File
	if len(args) > 0 {
		file = args[0]
	}
	if file == "" {
		return nil, fmt.Errorf("%w: pass an input file as an argument or with --file", gridframe.ErrMissingSource)
	}

	in, err := format.Parse(cfg.InputFormat)
	if err != nil {
		return nil, err
	}

	e := gridframe.Open(file).
		InputFormat(in).
		Encoding(cfg.Encoding).
		MinRows(cfg.MinRows).
		MinCols(cfg.MinCols)
	if cfg.SheetName != "" {
		return e.SheetName(cfg.SheetName), nil
	}
	return e.Sheet(cfg.Sheet), nil
}

// outputFormat resolves the configured output name. "auto" renders a table
// on a terminal and csv otherwise.
func outputFormat(name string, w io.Writer) (render.Format, error) {
	if name != config.OutputAuto {
		return render.ParseFormat(name)
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return render.FormatTable, nil
	}
	return render.FormatCSV, nil
}

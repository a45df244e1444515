package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tsawler/gridframe"
	"github.com/tsawler/gridframe/internal/cli/config"
)

// NewFramesCommand creates the frames command.
func NewFramesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "frames [file]",
		Short: "List the tables found in a file",
		Long: `List every table found in the input, in scan order, with its range in
A1 notation, its size and its title.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFrames,
	}
}

func runFrames(cmd *cobra.Command, args []string) error {
	cfg := GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	e, err := newExtractor(cfg, args)
	if err != nil {
		return err
	}

	summaries, err := e.Logger(logger).Summaries()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		if cfg.AllowEmpty {
			logger.Warn("no tables found")
			return nil
		}
		return fmt.Errorf("listing tables: %w", gridframe.ErrEmptyResult)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Range", "Rows", "Cols", "Title"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Index + 1, s.Ref, s.Rows, s.Cols, s.Title})
	}
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "(%d tables)\n", len(summaries))
	return nil
}

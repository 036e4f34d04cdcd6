// Command gridcells expands the straight segments listed in
// configs/data.csv into the grid cells they cover. Every cell is appended
// to output.txt and echoed to stdout as "<row>,<col>,<segment id>".
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/banshee-data/gridcells/internal/config"
	"github.com/banshee-data/gridcells/internal/fsutil"
	"github.com/banshee-data/gridcells/internal/monitoring"
	"github.com/banshee-data/gridcells/internal/version"
)

func main() {
	if err := newRootCmd(fsutil.OSFileSystem{}, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Cells are echoed to stdout; the
// filesystem holds the input tables, output.txt and any rendered files.
func newRootCmd(fsys fsutil.FileSystem, stdout io.Writer) *cobra.Command {
	cfg := config.Default()
	var logger *zap.Logger

	rootCmd := &cobra.Command{
		Use:   "gridcells",
		Short: "Expand grid segments into the cells they cover",
		Long: `gridcells reads the segment table configs/data.csv and the pin table
configs/ppin.csv, then writes one line per covered cell of every counted
horizontal or vertical segment to output.txt (appended) and to stdout.

The input and output paths are fixed. Optional flags add a SQLite run
ledger and coverage renderings.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = monitoring.NewLogger(cfg.Verbose)
			if err != nil {
				return err
			}
			monitoring.UseZap(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cfg, fsys, stdout)
		},
	}
	rootCmd.SetOut(stdout)

	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "log progress and the run summary to stderr")
	rootCmd.Flags().StringVar(&cfg.LedgerPath, "ledger", "", "record the run and its cells in this SQLite file")
	rootCmd.Flags().StringVar(&cfg.PlotPath, "plot", "", "write a PNG coverage plot to this file")
	rootCmd.Flags().StringVar(&cfg.ChartPath, "chart", "", "write an HTML coverage chart to this file")

	rootCmd.AddCommand(newRunsCmd(stdout), newVersionCmd(stdout))
	return rootCmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = io.WriteString(stdout, version.String()+"\n")
		},
	}
}

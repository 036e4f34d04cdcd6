package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/banshee-data/gridcells/internal/ledger"
)

func newRunsCmd(stdout io.Writer) *cobra.Command {
	var (
		ledgerPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in a ledger",
		Example: `  gridcells --ledger runs.db
  gridcells runs --ledger runs.db --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ledgerPath == "" {
				return fmt.Errorf("--ledger is required")
			}
			store, err := ledger.Open(ledgerPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(limit)
			if err != nil {
				return err
			}
			return writeRuns(stdout, runs)
		},
	}
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "SQLite ledger file")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list (0 for all)")
	return cmd
}

func writeRuns(w io.Writer, runs []ledger.RunRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tDURATION\tSTATUS\tSEGMENTS\tEXPANDED\tCELLS\tERROR")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.RunID,
			r.StartedAt.UTC().Format(time.RFC3339),
			r.Duration().Round(time.Millisecond),
			r.Status,
			r.Summary.SegmentsRead,
			r.Summary.SegmentsExpanded,
			r.Summary.CellsEmitted,
			r.Error,
		)
	}
	return tw.Flush()
}

package main

import (
	"errors"
	"io"

	"github.com/banshee-data/gridcells/internal/config"
	"github.com/banshee-data/gridcells/internal/fsutil"
	"github.com/banshee-data/gridcells/internal/grid"
	"github.com/banshee-data/gridcells/internal/ledger"
	"github.com/banshee-data/gridcells/internal/monitoring"
	"github.com/banshee-data/gridcells/internal/render"
)

// runExpand performs one expansion with cfg. Cells go to output.txt first,
// then to stdout, then to the optional ledger and recorder.
func runExpand(cfg *config.Config, fsys fsutil.FileSystem, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	sinks := grid.MultiSink{
		grid.NewAppendFileSink(fsys, cfg.Output),
		grid.DisplaySink{W: stdout},
	}

	var run *ledger.Run
	if cfg.LedgerPath != "" {
		store, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err = store.BeginRun()
		if err != nil {
			return err
		}
		monitoring.Logf("ledger run %s started in %s", run.ID, cfg.LedgerPath)
		sinks = append(sinks, run)
	}

	var recorder *grid.Recorder
	if cfg.PlotPath != "" || cfg.ChartPath != "" {
		recorder = &grid.Recorder{}
		sinks = append(sinks, recorder)
	}

	summary, runErr := grid.NewExpander(fsys, cfg.SegmentTable, cfg.PinTable, sinks).Run()
	if run != nil {
		if err := run.Finish(summary, runErr); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if cfg.PlotPath != "" {
		n, err := render.PlotPNG(fsys, cfg.PlotPath, recorder.Cells)
		if err != nil {
			return err
		}
		monitoring.Logf("plot %s: %d cells", cfg.PlotPath, n)
	}
	if cfg.ChartPath != "" {
		n, err := render.ChartHTML(fsys, cfg.ChartPath, recorder.Cells)
		if err != nil {
			return err
		}
		monitoring.Logf("chart %s: %d cells", cfg.ChartPath, n)
	}
	return nil
}

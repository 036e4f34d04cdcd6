package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/banshee-data/gridcells/internal/security"
)

// Input and output locations, relative to the working directory. They are
// fixed by convention and deliberately have no flag or environment override.
const (
	// SegmentTablePath is the segment table. Its first row is a header.
	SegmentTablePath = "configs/data.csv"
	// PinTablePath is the pin table. It has no header row.
	PinTablePath = "configs/ppin.csv"
	// OutputPath receives one appended line per emitted cell.
	OutputPath = "output.txt"
)

// Config describes one gridcells run. The table and output paths always
// come from the constants above; the remaining fields switch on optional
// outputs and are empty by default.
type Config struct {
	SegmentTable string
	PinTable     string
	Output       string

	// LedgerPath enables the SQLite run ledger when set.
	LedgerPath string
	// PlotPath enables the PNG coverage plot when set.
	PlotPath string
	// ChartPath enables the HTML coverage chart when set.
	ChartPath string

	Verbose bool
}

// Default returns a Config with the fixed paths and every optional output
// disabled.
func Default() *Config {
	return &Config{
		SegmentTable: SegmentTablePath,
		PinTable:     PinTablePath,
		Output:       OutputPath,
	}
}

// Validate checks the optional output paths. Each one must carry the
// extension of its format and stay under the working directory or the
// system temp directory.
func (c *Config) Validate() error {
	if c.SegmentTable == "" || c.PinTable == "" || c.Output == "" {
		return fmt.Errorf("segment table, pin table and output paths must be set")
	}
	if err := checkOutput("ledger", c.LedgerPath, ".db", ".sqlite", ".sqlite3"); err != nil {
		return err
	}
	if err := checkOutput("plot", c.PlotPath, ".png"); err != nil {
		return err
	}
	return checkOutput("chart", c.ChartPath, ".html")
}

func checkOutput(kind, path string, exts ...string) error {
	if path == "" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(exts, ext) {
		return fmt.Errorf("%s file must have %s extension, got %q", kind, strings.Join(exts, " or "), ext)
	}
	if err := security.ValidateOutputPath(path); err != nil {
		return fmt.Errorf("%s file: %w", kind, err)
	}
	return nil
}

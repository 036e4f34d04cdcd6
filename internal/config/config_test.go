package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "configs/data.csv", cfg.SegmentTable)
	assert.Equal(t, "configs/ppin.csv", cfg.PinTable)
	assert.Equal(t, "output.txt", cfg.Output)
	assert.Empty(t, cfg.LedgerPath)
	assert.Empty(t, cfg.PlotPath)
	assert.Empty(t, cfg.ChartPath)
	assert.False(t, cfg.Verbose)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ledger db", mutate: func(c *Config) { c.LedgerPath = "runs.db" }},
		{name: "ledger sqlite upper case", mutate: func(c *Config) { c.LedgerPath = "runs.SQLITE" }},
		{name: "ledger wrong extension", mutate: func(c *Config) { c.LedgerPath = "runs.json" }, wantErr: "ledger file"},
		{name: "plot png", mutate: func(c *Config) { c.PlotPath = "plots/coverage.png" }},
		{name: "plot wrong extension", mutate: func(c *Config) { c.PlotPath = "coverage.svg" }, wantErr: "plot file"},
		{name: "chart html", mutate: func(c *Config) { c.ChartPath = "coverage.html" }},
		{name: "chart no extension", mutate: func(c *Config) { c.ChartPath = "coverage" }, wantErr: "chart file"},
		{name: "ledger in temp dir", mutate: func(c *Config) { c.LedgerPath = filepath.Join(os.TempDir(), "runs.db") }},
		{name: "plot outside working directory", mutate: func(c *Config) { c.PlotPath = "/etc/coverage.png" }, wantErr: "plot file"},
		{name: "empty output", mutate: func(c *Config) { c.Output = "" }, wantErr: "must be set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

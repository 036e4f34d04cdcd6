package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinDirectory(t *testing.T) {
	root := t.TempDir()
	safe := filepath.Join(root, "safe")
	outside := filepath.Join(root, "outside")
	require.NoError(t, os.MkdirAll(safe, 0755))
	require.NoError(t, os.MkdirAll(outside, 0755))

	link := filepath.Join(safe, "plots")
	require.NoError(t, os.Symlink(outside, link))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"file in directory", filepath.Join(safe, "coverage.png"), false},
		{"missing nested directory", filepath.Join(safe, "a", "b", "runs.db"), false},
		{"directory itself", safe, false},
		{"dot dot escape", filepath.Join(safe, "..", "coverage.png"), true},
		{"absolute path elsewhere", "/etc/passwd", true},
		{"through symlink", filepath.Join(link, "coverage.png"), true},
		{"symlink itself", link, true},
		{"missing file under symlink", filepath.Join(link, "new", "coverage.png"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WithinDirectory(tt.path, safe)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithinDirectory_MissingDirectory(t *testing.T) {
	err := WithinDirectory("coverage.png", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, ValidateOutputPath("output/coverage.html"))
	assert.NoError(t, ValidateOutputPath(filepath.Join(t.TempDir(), "runs.db")))
	assert.Error(t, ValidateOutputPath("/etc/gridcells/runs.db"))
	assert.Error(t, ValidateOutputPath("../../../../../../../../tmp-not-here/coverage.png"))
}

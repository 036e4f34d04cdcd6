package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the build metadata on one line, as printed by
// `gridcells version`. The values are set with -ldflags -X at build time.
func String() string {
	return fmt.Sprintf("gridcells %s (commit %s, built %s)", Version, GitSHA, BuildTime)
}

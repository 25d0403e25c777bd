// Package version carries build identification stamped in via ldflags:
//
//	-X github.com/eros-data/landsat.qa/internal/version.Version=1.3.0
//	-X github.com/eros-data/landsat.qa/internal/version.GitSHA=$(git rev-parse --short HEAD)
//	-X github.com/eros-data/landsat.qa/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)
package version

import "fmt"

var (
	// Version is the release version of the QA toolkit
	Version = "dev"
	// GitSHA is the git commit the binaries were built from
	GitSHA = "unknown"
	// BuildTime is the UTC build timestamp
	BuildTime = "unknown"
)

// String returns a one-line description suitable for --version output.
func String() string {
	return fmt.Sprintf("landsat.qa %s (commit %s, built %s)", Version, GitSHA, BuildTime)
}

// AppVersion returns the tool-qualified version string recorded in the
// app_version attribute of generated band metadata, e.g.
// "generate_pixel_qa_1.3.0".
func AppVersion(tool string) string {
	return fmt.Sprintf("%s_%s", tool, Version)
}

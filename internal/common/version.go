package common

import "fmt"

// Version information (set via -ldflags during build)
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with build metadata for -version output.
func GetFullVersion() string {
	if Build == "unknown" && GitCommit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

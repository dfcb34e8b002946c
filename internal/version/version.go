// Package version carries the build metadata stamped in via -ldflags.
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the stamped version, commit and build date.
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

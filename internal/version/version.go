// Package version holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/piwi3910/BeamDetail/internal/version.Version=1.2.0"
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for the version command.
func String() string {
	return fmt.Sprintf("beamdetail %s (commit %s, built %s)", Version, Commit, Date)
}

// Package buildinfo exposes version metadata stamped in at link time.
package buildinfo

import "fmt"

// Overridden with -ldflags "-X github.com/dstoecklein/greeting-service/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("greeting-service %s (commit=%s, date=%s)", Version, Commit, Date)
}

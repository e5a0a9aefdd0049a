// Package buildinfo carries version metadata set at link time with
// -ldflags "-X github.com/mesh-intelligence/measures/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

// ModulePath is the Go module path of this project.
const ModulePath = "github.com/mesh-intelligence/measures"

func String() string {
	return fmt.Sprintf("measures v%s (commit=%s, date=%s)", Version, Commit, Date)
}

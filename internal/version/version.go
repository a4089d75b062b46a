// Package version provides build and version information.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current application version.
const Version = "0.3.0"

// Commit is set at build time with -ldflags "-X ...version.Commit=<sha>".
var Commit = "dev"

// Milestones:
// 0.3.0 - HTTP API with orbit streaming, favorites in SQLite, Prometheus metrics
// 0.2.0 - Galaxy browser, catalog file watching, config file and env overrides
// 0.1.0 - Initial release: catalog synthesis, terminal orrery, headless synth

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s (%s, %s/%s)", Version, Commit, runtime.GOOS, runtime.GOARCH)
}

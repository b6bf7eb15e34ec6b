// Package buildinfo carries the version baked into release binaries.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// Version is overridden at release time via -ldflags -X. The default keeps
// local `go run` / `go test` builds identifiable.
var Version = "0.4.0"

// DisplayVersion returns the version for user-facing output. When Version is
// left at its default by a `go install module@vX.Y.Z` build, the module
// version embedded in the binary wins.
func DisplayVersion() string {
	v := strings.TrimSpace(Version)
	if bi, ok := debug.ReadBuildInfo(); ok {
		mv := strings.TrimSpace(bi.Main.Version)
		if mv != "" && mv != "(devel)" {
			v = strings.TrimPrefix(mv, "v")
		}
	}
	return v
}

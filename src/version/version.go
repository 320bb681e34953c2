package version

import (
	"fmt"
	"strings"
)

// These variables are injected at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("crossfreight %s (%s, %s)", Version, Commit, BuildDate)
}

// ImageTag is the toolchain image tag matching this release.
// Development builds track the main images.
func ImageTag() string {
	if Version == "dev" || Version == "" {
		return "main"
	}
	return strings.TrimPrefix(Version, "v")
}

// Package version exposes build metadata for the quillmark binaries,
// populated from ldflags and the embedded VCS build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision, read from build info.
	Revision = revision()
	// GoVersion is the Go toolchain the binary was built with.
	GoVersion = runtime.Version()
)

// String renders the build metadata in a single human-readable line, used
// by the CLI's version subcommand.
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}

	return fmt.Sprintf("quillmark %s (revision %s, %s/%s, built with %s)",
		v, Revision, runtime.GOOS, runtime.GOARCH, GoVersion)
}

// revision reads the vcs revision from the embedded build info, marking
// builds from a modified tree with a "-dirty" suffix.
func revision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}

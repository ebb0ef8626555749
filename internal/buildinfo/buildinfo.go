// Package buildinfo stamps generated artifacts (the C wrapper, --version
// output) with a build identifier so two builds of the same blob can be
// told apart in a bug report.
package buildinfo

import "github.com/google/uuid"

// Version is the toolchain's release string, set at build time via
// -ldflags "-X github.com/polarvid/rt-thread/internal/buildinfo.Version=...".
var Version = "dev"

// NewBuildID generates a fresh build identifier for one compiler
// invocation. Each run gets its own id; it is not derived from the input
// so two builds from identical input remain distinguishable.
func NewBuildID() string {
	return uuid.NewString()
}

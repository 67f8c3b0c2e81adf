package version

import (
	"fmt"
	"runtime"
)

// Version is the mdlinks release, set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/mdlinks/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, also set through ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the one-line version banner.
func String() string {
	s := fmt.Sprintf("mdlinks %s (%s, %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if GitCommit != "unknown" {
		s += fmt.Sprintf(" commit %s built %s", GitCommit, BuildTime)
	}
	return s
}

// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X git.home.luguber.info/inful/sitegen/internal/version.Version=v1.0.0"
package version

// Version is the release version of the binary.
var Version = "dev"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the version with commit and build time.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}

// Package buildinfo holds version information stamped into the mvnresolve
// binary at build time.
//
// Variables are set via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/mvnresolve/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/mvnresolve/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/mvnresolve/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/mvnresolve
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// UserAgent returns the User-Agent sent to repositories, e.g. "mvnresolve/v0.3.0".
func UserAgent() string {
	return "mvnresolve/" + Version
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Package version carries build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/alexiusacademia/goframe/internal/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import "fmt"

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"

	Author = "Alexius Academia"
	Year   = "2025"
)

// String returns the version line printed by the CLI, with build details
// when they were injected.
func String() string {
	s := "goframe v" + Version
	if GitCommit != "unknown" || BuildTime != "unknown" {
		s += fmt.Sprintf(" (commit %s, built %s)", GitCommit, BuildTime)
	}
	return s
}

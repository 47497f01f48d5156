// Package version provides the build version of jwtool
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables, set via ldflags:
//
//	go build -ldflags "-X github.com/effective-security/jwtool/internal/version.Version=v1.0.0"
var (
	// Version is the semantic version
	Version = "v0.0.0-dev"
	// Commit is the git commit hash
	Commit = ""
)

// Info describes the build
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Current returns the current build info
func Current() Info {
	v := Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
	}
	if v.Commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					v.Commit = s.Value
				}
			}
		}
	}
	return v
}

// String returns version string
func (v Info) String() string {
	if v.Commit == "" {
		return v.Version
	}
	commit := v.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("%s (%s)", v.Version, commit)
}

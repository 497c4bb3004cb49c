// Package version reports build metadata stamped at link time
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo describes one binary build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Set with -ldflags, e.g.
//
//	-X 'residences/internal/core/version.version=v0.3.0'
//	-X 'residences/internal/core/version.commit=1a2b3c4'
//	-X 'residences/internal/core/version.date=2026-10-01'
var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// Info returns the build info of the running binary under the given service name
// an unstamped commit falls back to the vcs revision embedded by the go tool
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  Commit(),
		Date:    date,
		Go:      runtime.Version(),
	}
}

// Commit is the short commit of the build, "unknown" when nothing recorded it
func Commit() string {
	if commit != "" {
		return commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}

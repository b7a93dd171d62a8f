// Package version reports the build of the lmsadmin binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Set at link time, for example:
//
//	go build -ldflags "-X lmsadmin/internal/version.Version=1.0.0 \
//	                   -X lmsadmin/internal/version.Commit=abc123 \
//	                   -X lmsadmin/internal/version.BuildTime=2026-01-01T00:00:00Z"
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "" // RFC3339
)

// Info describes the running binary.
type Info struct {
	Version   string    `json:"version" yaml:"version"`
	Commit    string    `json:"commit" yaml:"commit"`
	BuildTime time.Time `json:"build_time" yaml:"build_time"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	OS        string    `json:"os" yaml:"os"`
	Arch      string    `json:"arch" yaml:"arch"`
}

// Get returns the build information. Without a linked commit or build
// time, the VCS stamps recorded by the Go toolchain are used.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildTime = t
	}

	stamps := vcsStamps()
	if info.Commit == "unknown" && stamps["vcs.revision"] != "" {
		info.Commit = stamps["vcs.revision"]
	}
	if info.BuildTime.IsZero() {
		if t, err := time.Parse(time.RFC3339, stamps["vcs.time"]); err == nil {
			info.BuildTime = t
		}
	}
	return info
}

func vcsStamps() map[string]string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	stamps := make(map[string]string)
	for _, s := range bi.Settings {
		if strings.HasPrefix(s.Key, "vcs.") {
			stamps[s.Key] = s.Value
		}
	}
	return stamps
}

// String returns the version with the short commit when one is known.
func (i Info) String() string {
	if len(i.Commit) <= 7 || i.Commit == "unknown" {
		return i.Version
	}
	return i.Version + " (" + i.Commit[:7] + ")"
}

// Full returns every field, one per line.
func (i Info) Full() string {
	built := "unknown"
	if !i.BuildTime.IsZero() {
		built = i.BuildTime.Format(time.RFC3339)
	}

	var b strings.Builder
	for _, line := range [][2]string{
		{"Version", i.Version},
		{"Commit", i.Commit},
		{"Build Time", built},
		{"Go Version", i.GoVersion},
		{"OS/Arch", i.OS + "/" + i.Arch},
	} {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", line[0], line[1])
	}
	return b.String()
}

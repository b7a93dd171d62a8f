package version

import (
	"strings"
	"testing"
	"time"
)

func TestInfo_String(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "1.2.0", Commit: "unknown"}, "1.2.0"},
		{Info{Version: "1.2.0", Commit: "abc"}, "1.2.0"},
		{Info{Version: "1.2.0", Commit: "0123456789abcdef"}, "1.2.0 (0123456)"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestInfo_Full(t *testing.T) {
	info := Info{
		Version:   "1.0.0",
		Commit:    "abc",
		BuildTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		GoVersion: "go1.24",
		OS:        "linux",
		Arch:      "amd64",
	}
	full := info.Full()
	for _, want := range []string{"Version: 1.0.0", "Build Time: 2026-01-02T03:04:05Z", "OS/Arch: linux/amd64"} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() is missing %q:\n%s", want, full)
		}
	}
	if !strings.Contains(Info{}.Full(), "Build Time: unknown") {
		t.Error("expected an unknown build time")
	}
}

func TestGet(t *testing.T) {
	saved := BuildTime
	BuildTime = "2026-05-01T10:00:00Z"
	t.Cleanup(func() { BuildTime = saved })

	info := Get()
	if info.Version != Version || info.GoVersion == "" || info.OS == "" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.BuildTime.Year() != 2026 {
		t.Errorf("expected the build time to be parsed, got %v", info.BuildTime)
	}
}

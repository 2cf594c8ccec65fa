package version

import (
	"runtime/debug"
	"testing"
)

func buildInfo(settings ...debug.BuildSetting) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.26.0",
			Main:      debug.Module{Path: "github.com/samcharles93/kernreg", Version: "(devel)"},
			Settings:  settings,
		}, true
	}
}

func TestResolvePrefersLinkerValues(t *testing.T) {
	info := resolve("v1.2.0", "abc", "2026-01-01", buildInfo(
		debug.BuildSetting{Key: "vcs.revision", Value: "def"},
	))
	if info.Version != "v1.2.0" || info.Commit != "abc" || info.BuildTime != "2026-01-01" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.GoVersion != "go1.26.0" {
		t.Fatalf("go version: got %q", info.GoVersion)
	}
}

func TestResolveFromBuildInfo(t *testing.T) {
	info := resolve("", "", "", buildInfo(
		debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"},
	))
	if info.Version != "devel" {
		t.Fatalf("version: got %q", info.Version)
	}
	if got, want := info.String(), "devel (0123456789ab+dirty)"; got != want {
		t.Fatalf("String: got %q want %q", got, want)
	}
	if info.BuildTime != "2026-10-01T00:00:00Z" {
		t.Fatalf("build time: got %q", info.BuildTime)
	}
}

func TestResolveWithoutBuildInfo(t *testing.T) {
	info := resolve("", "", "", func() (*debug.BuildInfo, bool) { return nil, false })
	if info.String() != "devel" {
		t.Fatalf("got %q", info.String())
	}
}

package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	ldflags := Info{Version: "v1.2.0", Commit: "abc123", Date: "2026-01-02"}
	defaults := Info{Version: "dev", Commit: "none", Date: "unknown"}
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "def456"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		info Info
		bi   *debug.BuildInfo
		want Info
	}{
		{"no build info", defaults, nil, defaults},
		{"ldflags win", ldflags, stamped, Info{Version: "v1.2.0", Commit: "abc123", Date: "2026-01-02", Dirty: true}},
		{"toolchain stamp", defaults, stamped, Info{Version: "v1.3.0", Commit: "def456", Date: "2026-03-04T05:06:07Z", Dirty: true}},
		{"devel build", defaults, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, defaults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.info, tt.bi); got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	s := Info{Version: "v1.0.0", Commit: "abc", Date: "today", Dirty: true}.String()
	for _, want := range []string{"version: v1.0.0", "commit: abc (modified)", "built: today"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version: ") {
		t.Errorf("Template() = %q", Template())
	}
}

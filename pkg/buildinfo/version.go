// Package buildinfo reports the version of the vamsha binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/vamsha/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/vamsha/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/vamsha/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries installed with go install carry no ldflags; for those the module
// version and VCS stamp recorded by the toolchain are used instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build information.
type Info struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool // built from a modified work tree
}

// Read resolves the build information, preferring ldflags values.
func Read() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(Info{Version: Version, Commit: Commit, Date: Date}, bi)
}

func resolve(info Info, bi *debug.BuildInfo) Info {
	if bi == nil {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func (i Info) String() string {
	commit := i.Commit
	if i.Dirty {
		commit += " (modified)"
	}
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, commit, i.Date)
}

// Template returns the version template for cobra.
func Template() string {
	return "{{.Name}} " + Read().String() + "\n"
}

package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Name is the program name used in version output and the User-Agent.
const Name = "vidscribe"

// Set with -ldflags "-X github.com/kbukum/vidscribe/version.Version=...".
// Unset values fall back to the VCS stamp in the binary's build info.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Branch    string `json:"branch,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty"`
}

// Current merges the link-time variables with the build info.
func Current() Info {
	info := Info{Version: Version, Commit: GitCommit, Branch: GitBranch, BuildTime: BuildTime}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value[:min(7, len(s.Value))]
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// Short is the version plus the commit, e.g. 1.4.0-abc1234-dirty.
func (i Info) Short() string {
	parts := []string{i.Version}
	if i.Commit != "" {
		parts = append(parts, i.Commit)
		if i.Dirty {
			parts = append(parts, "dirty")
		}
	}
	return strings.Join(parts, "-")
}

// Short returns Current().Short().
func Short() string { return Current().Short() }

// UserAgent identifies vidscribe to remote transcription services.
func UserAgent() string { return Name + "/" + Short() }

// String renders the report printed by the version command.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Name, i.Version)
	if i.Commit != "" {
		dirty := ""
		if i.Dirty {
			dirty = " (dirty)"
		}
		fmt.Fprintf(&b, "  commit:  %s%s\n", i.Commit, dirty)
	}
	if i.Branch != "" {
		fmt.Fprintf(&b, "  branch:  %s\n", i.Branch)
	}
	if i.BuildTime != "" {
		fmt.Fprintf(&b, "  built:   %s\n", i.BuildTime)
	}
	fmt.Fprintf(&b, "  go:      %s\n", i.GoVersion)
	return b.String()
}

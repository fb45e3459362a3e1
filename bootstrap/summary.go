package bootstrap

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ComponentStatus is one engine or external tool in the summary.
type ComponentStatus struct {
	Name    string
	Status  string
	Details string
	Healthy bool
}

// Setting is a labeled value in the summary.
type Setting struct {
	Key   string
	Value string
}

// Summary lists what a run is about to use. It is printed once startup
// finishes and before the pipeline runs.
type Summary struct {
	name, version string
	took          time.Duration
	components    []ComponentStatus
	settings      []Setting
	out           io.Writer
}

// NewSummary returns a summary that prints to stderr.
func NewSummary(name, version string) *Summary {
	return &Summary{name: name, version: version, out: os.Stderr}
}

// SetStartupDuration records how long startup took.
func (s *Summary) SetStartupDuration(d time.Duration) { s.took = d }

// TrackComponent adds an engine or tool row.
func (s *Summary) TrackComponent(name, status, details string, healthy bool) {
	s.components = append(s.components, ComponentStatus{Name: name, Status: status, Details: details, Healthy: healthy})
}

// TrackSetting adds a key/value row.
func (s *Summary) TrackSetting(key, value string) {
	s.settings = append(s.settings, Setting{Key: key, Value: value})
}

// Components returns the tracked rows in insertion order.
func (s *Summary) Components() []ComponentStatus { return s.components }

// Display renders the summary. Nothing is written when output is disabled.
func (s *Summary) Display() {
	if s.out == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n🚀 %s v%s ready in %.2fs\n", s.name, s.version, s.took.Seconds())

	if n := len(s.settings); n > 0 {
		b.WriteString("\n⚙️  Settings\n")
		for i, st := range s.settings {
			fmt.Fprintf(&b, "   %s %s: %s\n", treePrefix(i, n), st.Key, st.Value)
		}
	}

	b.WriteString("\n📦 Engines\n")
	n := len(s.components)
	if n == 0 {
		b.WriteString("   └── No engines registered\n")
	}
	ready := 0
	for i, c := range s.components {
		fmt.Fprintf(&b, "   %s %s %s (%s)", treePrefix(i, n), statusIcon(c.Status, c.Healthy), c.Name, c.Status)
		if c.Details != "" {
			b.WriteString(": " + c.Details)
		}
		b.WriteByte('\n')
		if c.Healthy {
			ready++
		}
	}
	if n > 0 && ready < n {
		fmt.Fprintf(&b, "\n⚠️  Some engines are unavailable (%d/%d ready)\n", ready, n)
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(s.out, b.String())
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

var statusIcons = map[string]string{
	"available": "✅",
	"ready":     "✅",
	"disabled":  "⏸️",
	"missing":   "❌",
	"failed":    "❌",
}

func statusIcon(status string, healthy bool) string {
	if !healthy {
		return "❌"
	}
	if icon, ok := statusIcons[status]; ok {
		return icon
	}
	return "⚠️"
}

package content

import (
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// NavEntry is a single navigation item.
type NavEntry struct {
	Label string
	Path  string
}

// Navigation is the label to output-path index shared by every rendered page.
// It is built once per build and never mutated afterwards.
type Navigation struct {
	entries []NavEntry
	index   map[string]int
}

// BuildNavigation derives a NavEntry for each top-level entry in order.
// When two entries derive the same label the later one wins and keeps the
// position of the first.
func BuildNavigation(entries []Entry, rules Rules) *Navigation {
	nav := &Navigation{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		label, out := Derive(e.RelativePath, rules)
		if i, ok := nav.index[label]; ok {
			slog.Warn("Navigation label collision, later entry wins",
				logfields.Label(label),
				slog.String("previous", nav.entries[i].Path),
				logfields.Output(out))
			nav.entries[i].Path = out
			continue
		}
		nav.index[label] = len(nav.entries)
		nav.entries = append(nav.entries, NavEntry{Label: label, Path: out})
	}
	return nav
}

// Map returns a fresh label to path map for template consumption.
func (n *Navigation) Map() map[string]string {
	m := make(map[string]string, len(n.entries))
	for _, e := range n.entries {
		m[e.Label] = e.Path
	}
	return m
}

// Entries returns the entries in discovery order.
func (n *Navigation) Entries() []NavEntry {
	out := make([]NavEntry, len(n.entries))
	copy(out, n.entries)
	return out
}

func (n *Navigation) Len() int { return len(n.entries) }

package report

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/tallywatch/tallywatch/internal/snapshot"
	"github.com/tallywatch/tallywatch/internal/tally"
)

// Filter returns a series containing only the states whose name
// matches at least one of the glob patterns. Record slices are shared
// with the input, not copied.
func Filter(series snapshot.Series, patterns []string) snapshot.Series {
	groups := make(map[string][]tally.Record)
	for state, rows := range series.Groups {
		if matchesAny(patterns, state) {
			groups[state] = rows
		}
	}
	return snapshot.Series{Groups: groups}
}

func matchesAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// Package channels maintains the channel name to ID directory and the
// glob filters used when listing it.
package channels

import (
	"path/filepath"
	"strings"

	"github.com/chrisedwards/slack-summarizer/internal/slack"
)

// Filter applies include/exclude patterns to a list of channels.
type Filter struct {
	include []string
	exclude []string
}

// NewFilter creates a Filter with the given include and exclude patterns.
func NewFilter(include, exclude []string) *Filter {
	return &Filter{
		include: include,
		exclude: exclude,
	}
}

// Apply filters the given channels based on include/exclude patterns.
// Returns channels that match include patterns and don't match exclude patterns.
func (f *Filter) Apply(channels []slack.Channel) []slack.Channel {
	return FilterChannels(channels, f.include, f.exclude)
}

// FilterChannels keeps channels whose name or ID matches an include pattern
// (all channels when include is empty) and matches no exclude pattern.
// Input order is preserved.
func FilterChannels(channels []slack.Channel, include, exclude []string) []slack.Channel {
	result := make([]slack.Channel, 0, len(channels))
	for _, ch := range channels {
		if len(include) > 0 && !MatchAny(include, ch.Name) && !MatchAny(include, ch.ID) {
			continue
		}
		if MatchAny(exclude, ch.Name) || MatchAny(exclude, ch.ID) {
			continue
		}
		result = append(result, ch)
	}
	return result
}

// MatchAny checks if a value matches any pattern in a list.
// Returns true if any pattern matches, false for empty pattern list.
// Short-circuits on first match.
func MatchAny(patterns []string, value string) bool {
	for _, pattern := range patterns {
		if MatchPattern(pattern, value) {
			return true
		}
	}
	return false
}

// MatchPattern matches a value against a glob pattern.
// Supports glob patterns (* matches any sequence, ? matches single character).
// Matching is case-insensitive. Returns false for invalid patterns.
func MatchPattern(pattern, value string) bool {
	matched, err := filepath.Match(pattern, value)
	if err != nil {
		return false
	}
	if matched {
		return true
	}
	lowerPattern := strings.ToLower(pattern)
	lowerValue := strings.ToLower(value)
	matched, _ = filepath.Match(lowerPattern, lowerValue)
	return matched
}

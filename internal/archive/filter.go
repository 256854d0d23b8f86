package archive

import (
	"path/filepath"
	"strings"
)

// Filter selects channel names using include/exclude glob patterns.
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

// Match reports whether a channel name passes the filter. The name
// must match an include pattern (an empty include list admits every
// name) and must not match any exclude pattern.
func (f *Filter) Match(name string) bool {
	if len(f.include) > 0 && !matchAny(f.include, name) {
		return false
	}
	return !matchAny(f.exclude, name)
}

// matchAny checks if a value matches any pattern in a list.
// Returns false for an empty pattern list. Short-circuits on first match.
func matchAny(patterns []string, value string) bool {
	for _, pattern := range patterns {
		if matchPattern(pattern, value) {
			return true
		}
	}
	return false
}

// matchPattern matches a value against a glob pattern (* matches any
// sequence, ? matches a single character). Matching is
// case-insensitive. Returns false for invalid patterns.
func matchPattern(pattern, value string) bool {
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

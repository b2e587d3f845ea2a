package filter

import (
	"regexp"
	"strings"
)

// Pattern is one include or exclude expression and where it came from.
type Pattern struct {
	Expression string
	// Path is the filter file the pattern was read from; empty for flags.
	Path string
}

// Patterns holds the persisted per-user filter file contents.
type Patterns struct {
	Exclude []Pattern
	Include []Pattern
}

// MergePatterns validates the flag pattern and the persisted patterns and
// joins them with "|", flag pattern first. It returns "" when there is
// nothing to filter on.
func MergePatterns(flag string, persisted []Pattern) (string, error) {
	all := make([]Pattern, 0, len(persisted)+1)
	if flag != "" {
		all = append(all, Pattern{Expression: flag})
	}
	all = append(all, persisted...)

	exprs := make([]string, 0, len(all))
	for _, p := range all {
		if p.Expression == "" {
			continue
		}
		if _, err := regexp.Compile(p.Expression); err != nil {
			return "", &InvalidRegexError{Expression: p.Expression, Path: p.Path, Err: err}
		}
		exprs = append(exprs, p.Expression)
	}
	return strings.Join(exprs, "|"), nil
}

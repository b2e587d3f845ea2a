package filter

import "fmt"

// InvalidTimestampError is returned when a start or end time cannot be parsed.
type InvalidTimestampError struct {
	Input string
	Err   error
}

func (e *InvalidTimestampError) Error() string {
	return "Input timestamp is of invalid type. Try again."
}

func (e *InvalidTimestampError) Unwrap() error {
	return e.Err
}

// InvalidLimitError is returned for a negative row limit.
type InvalidLimitError struct {
	Limit int
}

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("Invalid limit %d: limit must not be negative", e.Limit)
}

// InvalidRegexError is returned when an include or exclude pattern does not
// compile. Path is set when the pattern was read from a persisted filter file.
type InvalidRegexError struct {
	Expression string
	Path       string
	Err        error
}

func (e *InvalidRegexError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("Invalid regular expression %q in %s: %v", e.Expression, e.Path, e.Err)
	}
	return fmt.Sprintf("Invalid regular expression %q: %v", e.Expression, e.Err)
}

func (e *InvalidRegexError) Unwrap() error {
	return e.Err
}

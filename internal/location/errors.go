package location

import "fmt"

// BadLocationInputError is returned when a location or job id value contains
// characters reserved for backend-side pattern matching.
type BadLocationInputError struct {
	// Field names the input that was rejected, e.g. "location" or "jobid".
	Field string
	// Value is the rejected input.
	Value string
}

// Error implements the error interface.
func (e *BadLocationInputError) Error() string {
	field := e.Field
	if field == "" {
		field = "location"
	}
	return fmt.Sprintf("Bad input, please try with a valid %s", field)
}

// InvalidDeviceExpressionError is returned when a location expression cannot
// be expanded.
type InvalidDeviceExpressionError struct {
	// Expression is the input that failed to parse.
	Expression string
	// Reason describes what is wrong with the expression.
	Reason string
}

// Error implements the error interface.
func (e *InvalidDeviceExpressionError) Error() string {
	return fmt.Sprintf("Invalid device expression %q: %s", e.Expression, e.Reason)
}

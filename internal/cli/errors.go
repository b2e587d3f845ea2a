package cli

import "strings"

const (
	// InterruptedMessage is reported when the user cancels a running command.
	InterruptedMessage = "User has interrupted the command execution"
	// SummaryConflictMessage is reported for --summary combined with --format.
	SummaryConflictMessage = "Summary option cannot be used with format option. Please use only one of them."

	restrictedCharacters      = "#"
	restrictedCharacterFormat = "Error: input data contains special characters. Ex:[#]"
)

// UserConflictError indicates mutually exclusive options were combined.
type UserConflictError struct {
	Message string
}

func (e *UserConflictError) Error() string {
	return e.Message
}

// InterruptedError indicates the command was cancelled by the user.
type InterruptedError struct {
	// Reason is the underlying cancellation, usually context.Canceled.
	Reason error
}

func (e *InterruptedError) Error() string {
	return InterruptedMessage
}

// Unwrap returns the underlying error.
func (e *InterruptedError) Unwrap() error {
	return e.Reason
}

// RestrictedInputError indicates an argument contains a character the
// server cannot accept.
type RestrictedInputError struct {
	Value string
}

func (e *RestrictedInputError) Error() string {
	return restrictedCharacterFormat
}

// CheckRestrictedCharacters rejects the first value containing '#'.
func CheckRestrictedCharacters(values []string) error {
	for _, v := range values {
		if strings.ContainsAny(v, restrictedCharacters) {
			return &RestrictedInputError{Value: v}
		}
	}
	return nil
}

// CheckSummaryConflict fails when --summary was requested together with an
// explicitly set --format.
func CheckSummaryConflict(summary, formatChanged bool) error {
	if summary && formatChanged {
		return &UserConflictError{Message: SummaryConflictMessage}
	}
	return nil
}

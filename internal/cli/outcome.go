package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Outcome is the result of one command: the process return code and the
// text shown to the user.
type Outcome struct {
	ReturnCode int
	Message    string
}

// String returns the message.
func (o Outcome) String() string {
	return o.Message
}

// Succeeded reports whether ReturnCode is zero.
func (o Outcome) Succeeded() bool {
	return o.ReturnCode == 0
}

// Error implements the error interface so a failed Outcome can be returned
// from a cobra RunE.
func (o Outcome) Error() string {
	return o.Message
}

// Success returns a zero return code Outcome.
func Success(message string) Outcome {
	return Outcome{ReturnCode: 0, Message: message}
}

// Failure returns an Outcome with return code 1.
func Failure(message string) Outcome {
	return Outcome{ReturnCode: 1, Message: message}
}

// FromError maps err to a failed Outcome. A nil err is a successful empty
// Outcome. An Outcome wrapped in err is returned as is, and cancellation is
// reported as an interruption.
func FromError(err error) Outcome {
	if err == nil {
		return Success("")
	}

	var outcome Outcome
	if errors.As(err, &outcome) {
		return outcome
	}
	var interrupted *InterruptedError
	if errors.As(err, &interrupted) || errors.Is(err, context.Canceled) {
		return Failure(InterruptedMessage)
	}
	return Failure(singleLine(err.Error()))
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Print writes the outcome's message to stdout on success and to stderr
// otherwise. Empty messages print nothing.
func Print(o Outcome, stdout, stderr io.Writer) {
	if o.Message == "" {
		return
	}
	w := stdout
	if !o.Succeeded() {
		w = stderr
	}
	fmt.Fprintln(w, o.Message)
}

package envelope

import (
	"fmt"

	ucsstrings "ucs/pkg/strings"
)

// maxRawInMessage bounds how much of the response body is echoed in Error.
const maxRawInMessage = 200

// MalformedEnvelopeError is returned when a response body is not a result
// envelope. Raw holds the full body for diagnostics.
type MalformedEnvelopeError struct {
	Raw    string
	Reason string
}

func (e *MalformedEnvelopeError) Error() string {
	raw := ucsstrings.Truncate(e.Raw, maxRawInMessage)
	if raw == "" {
		raw = "<empty response>"
	}
	return fmt.Sprintf("Malformed response (%s): %s", e.Reason, raw)
}

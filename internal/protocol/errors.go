// internal/protocol/errors.go
package protocol

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse matches every *MalformedResponseError via errors.Is.
var ErrMalformedResponse = errors.New("malformed response")

// MalformedResponseError reports a payload that does not have the expected
// shape: too few fields, or a field that does not parse as its type.
type MalformedResponseError struct {
	Mnemonic string // query that produced the payload, when known
	Payload  string
	Reason   string
	Err      error // underlying parse error, if any
}

func (e *MalformedResponseError) Error() string {
	msg := "malformed response"
	if e.Mnemonic != "" {
		msg += " to " + e.Mnemonic
	}
	msg += fmt.Sprintf(" %q: %s", e.Payload, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

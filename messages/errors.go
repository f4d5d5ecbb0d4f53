// messages/errors.go
package messages

import (
	"errors"

	"github.com/radeva/paypal-messages-go/internal/messagerequest"
)

// ErrorKind classifies a MessageError.
type ErrorKind int

const (
	// KindInvalidURL means the request URL could not be built.
	KindInvalidURL ErrorKind = iota
	// KindInvalidResponse means the upstream returned a non-200 status or
	// an undecodable body.
	KindInvalidResponse
)

// MessageError is the error delivered through state delegates when a fetch
// or modal load fails. DebugID, when present, identifies the failing request
// on the PayPal side.
type MessageError struct {
	Kind    ErrorKind
	DebugID string
}

func (e *MessageError) Error() string {
	name := e.name()
	if e.DebugID != "" {
		return name + " (debug_id " + e.DebugID + ")"
	}
	return name
}

func (e *MessageError) name() string {
	switch e.Kind {
	case KindInvalidURL:
		return "InvalidURL"
	default:
		return "InvalidResponse"
	}
}

// mapRequestError converts internal request failures to the public error
// type.
func mapRequestError(err error) *MessageError {
	if errors.Is(err, messagerequest.ErrInvalidURL) {
		return &MessageError{Kind: KindInvalidURL}
	}
	var respErr *messagerequest.ResponseError
	if errors.As(err, &respErr) {
		return &MessageError{Kind: KindInvalidResponse, DebugID: respErr.DebugID}
	}
	return &MessageError{Kind: KindInvalidResponse}
}

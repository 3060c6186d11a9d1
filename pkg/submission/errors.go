package submission

import (
	"errors"
	"fmt"
)

// Kind classifies a failed submission.
type Kind string

const (
	// KindClientRequest is a 4xx response.
	KindClientRequest Kind = "client_request"
	// KindServer is a 5xx response.
	KindServer Kind = "server"
	// KindStatus is any other non-success status.
	KindStatus Kind = "status"
	// KindConnectivity means no response arrived (network failure or timeout).
	KindConnectivity Kind = "connectivity"
	// KindUnexpected covers everything else, such as encoding failures or a
	// success response without the expected fields.
	KindUnexpected Kind = "unexpected"
)

const (
	msgInvalidRequest = "Invalid request data"
	msgServerError    = "Server error occurred"
	msgNoResponse     = "No response from server. Please check your connection."
	msgUnexpected     = "An unexpected error occurred"
)

// ErrServerNotResponding is returned by HealthCheck for any failure.
var ErrServerNotResponding = errors.New("submission: server is not responding")

// Error is returned by Submit. Message is safe to show to the user.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("submission: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("submission: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or "" when err is not a submission error.
func KindOf(err error) Kind {
	var subErr *Error
	if errors.As(err, &subErr) {
		return subErr.Kind
	}
	return ""
}

// statusError builds the error for a non-success response. serverMessage
// wins over the generic text when the body carried one.
func statusError(status int, serverMessage string) *Error {
	e := &Error{Status: status, Message: serverMessage}
	switch {
	case status >= 400 && status < 500:
		e.Kind = KindClientRequest
		if e.Message == "" {
			e.Message = msgInvalidRequest
		}
	case status >= 500 && status < 600:
		e.Kind = KindServer
		if e.Message == "" {
			e.Message = msgServerError
		}
	default:
		e.Kind = KindStatus
		if e.Message == "" {
			e.Message = fmt.Sprintf("Request failed with status %d", status)
		}
	}
	return e
}

func connectivityError(err error) *Error {
	return &Error{Kind: KindConnectivity, Message: msgNoResponse, Err: err}
}

// internalError is an unexpected failure whose cause is not meant for the
// user, such as a contract rejection or a truncated response body.
func internalError(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: msgUnexpected, Err: err}
}

func unexpectedError(err error) *Error {
	msg := msgUnexpected
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNilForm is returned when a session is run without a form.
	ErrNilForm = errors.New("tui: form is nil")
	// ErrGaveUp is returned when the user declines to resubmit after a
	// failed submission. The submission error is joined to it.
	ErrGaveUp = errors.New("tui: submission abandoned")
)

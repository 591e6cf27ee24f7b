package errors

import "errors"

// Common errors
var (
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("resource not found")
	ErrPrecondition  = errors.New("precondition failed")
	ErrConflict      = errors.New("resource conflict")
	ErrInternalError = errors.New("internal server error")
)

// Meeting errors
var (
	ErrMeetingNotFound   = fmtKind(ErrNotFound, "meeting not found")
	ErrCaptureNotFound   = fmtKind(ErrNotFound, "capture record not found")
	ErrInvalidTransition = fmtKind(ErrPrecondition, "invalid status transition")
	ErrScheduleMissing   = fmtKind(ErrPrecondition, "meeting has no schedule")
	ErrNotDraft          = fmtKind(ErrPrecondition, "meeting is no longer a draft")
	ErrCaptureConflict   = fmtKind(ErrConflict, "meeting was already captured or cancelled")
)

// kindError is a specific error that also matches its broader kind with errors.Is
type kindError struct {
	kind error
	msg  string
}

func fmtKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

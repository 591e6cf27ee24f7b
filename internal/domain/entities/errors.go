package entities

import "errors"

// Domain errors
var (
	// Schedule errors
	ErrInvalidDuration         = errors.New("duration minutes must be greater than zero")
	ErrScheduleEndWithoutStart = errors.New("scheduled end requires a scheduled start")
	ErrScheduleEndBeforeStart  = errors.New("scheduled end must be after scheduled start")

	// Attendee errors
	ErrMultipleOwners = errors.New("at most one attendee can be the owner")
	ErrOwnerMismatch  = errors.New("owner attendee must match the meeting owner")

	// Capture errors
	ErrUnknownOutcome     = errors.New("outcome does not belong to this meeting")
	ErrDuplicateItemID    = errors.New("duplicate item id in capture data")
	ErrUnsupportedVersion = errors.New("unsupported capture data version")
)

// Package callcontext bounds and annotates a single call to an external collaborator.
package callcontext

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyMeetingID     KeyContext = "meeting_id"
	keyCollaborator  KeyContext = "collaborator"
	keyItemRef       KeyContext = "item_ref"
	keyCallStartTime KeyContext = "call_start_time"
)

// ErrCallTimeout is returned when a collaborator call outlives its budget
var ErrCallTimeout = errors.New("collaborator call timed out")

// CallMetadata holds metadata for one collaborator call
type CallMetadata struct {
	MeetingID    uuid.UUID
	Collaborator string
	ItemRef      string
	StartTime    time.Time
}

// CallBegin derives a context bounded by timeout and tagged with call metadata
func CallBegin(parentCtx context.Context, meetingID uuid.UUID, collaborator, itemRef string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyMeetingID, meetingID)
	ctx = context.WithValue(ctx, keyCollaborator, collaborator)
	ctx = context.WithValue(ctx, keyItemRef, itemRef)
	ctx = context.WithValue(ctx, keyCallStartTime, time.Now())

	return ctx, cancel
}

// CallEnd runs fn once with panic recovery. A call that fails because its own deadline
// passed is reported as ErrCallTimeout.
func CallEnd(ctx context.Context, fn func(context.Context) error) (err error) {
	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before call: %w", ctx.Err())
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	err = fn(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		meta := GetCallMetadata(ctx)
		return fmt.Errorf("%w: %s after %s", ErrCallTimeout, meta.Collaborator, time.Since(meta.StartTime).Round(time.Millisecond))
	}
	return err
}

// Run is CallBegin followed by CallEnd
func Run(parentCtx context.Context, meetingID uuid.UUID, collaborator, itemRef string, timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := CallBegin(parentCtx, meetingID, collaborator, itemRef, timeout)
	defer cancel()
	return CallEnd(ctx, fn)
}

// GetMeetingID extracts meeting ID from context
func GetMeetingID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyMeetingID).(uuid.UUID)
	return id, ok
}

// GetCallMetadata extracts all call metadata from context
func GetCallMetadata(ctx context.Context) *CallMetadata {
	meetingID, _ := GetMeetingID(ctx)
	collaborator, _ := ctx.Value(keyCollaborator).(string)
	itemRef, _ := ctx.Value(keyItemRef).(string)
	startTime, _ := ctx.Value(keyCallStartTime).(time.Time)

	return &CallMetadata{
		MeetingID:    meetingID,
		Collaborator: collaborator,
		ItemRef:      itemRef,
		StartTime:    startTime,
	}
}

// IsRetryableError checks if an error should trigger a retry
// Retryable errors include: network errors, timeouts, rate limits, 5xx
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrCallTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}

// Package gateways declares the ports through which the meeting engine talks to
// external systems. Every call may block on I/O; callers bound each one with a timeout.
package gateways

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
)

// CalendarOptions tunes event creation
type CalendarOptions struct {
	OnlineMeeting bool
}

// CalendarEvent is the result of a calendar sync. JoinURL is empty when the
// calendar did not provision an online meeting.
type CalendarEvent struct {
	EventID string
	JoinURL string
}

// CalendarGateway creates calendar events for scheduled meetings
type CalendarGateway interface {
	CreateEvent(ctx context.Context, meeting *entities.Meeting, opts CalendarOptions) (*CalendarEvent, error)
}

// OnlineRoomProvider provisions an online room when the calendar cannot supply a join URL
type OnlineRoomProvider interface {
	CreateRoom(ctx context.Context, meeting *entities.Meeting) (joinURL string, err error)
}

// TaskGateway creates the owner accountability task for a scheduled meeting
type TaskGateway interface {
	CreateOwnerTask(ctx context.Context, meeting *entities.Meeting) (taskID string, err error)
}

// NotesPage is a rendered notes document
type NotesPage struct {
	MeetingID uuid.UUID
	Title     string
	Markdown  string
}

// NotesStore persists notes pages. Writing the same key twice replaces the page.
type NotesStore interface {
	PutPage(ctx context.Context, key string, page NotesPage) (*entities.PageRef, error)
}

// SubtaskRequest describes one subtask derived from an action item. ParentTaskID is
// nil for scope-level subtasks.
type SubtaskRequest struct {
	MeetingID    uuid.UUID
	MeetingTitle string
	Scope        entities.Scope
	ParentTaskID *string
	ActionItem   entities.ActionItem
}

// SubtaskStore creates tasks from action items
type SubtaskStore interface {
	CreateSubtask(ctx context.Context, req SubtaskRequest) (*entities.SubtaskRef, error)
}

// ContextEntry is a decision recorded in a scope's context store
type ContextEntry struct {
	Scope        entities.Scope    `json:"scope"`
	MeetingID    uuid.UUID         `json:"meeting_id"`
	MeetingTitle string            `json:"meeting_title"`
	Decision     entities.Decision `json:"decision"`
	RecordedAt   time.Time         `json:"recorded_at"`
}

// ContextStore records decisions into a scope. Writing an existing key is a no-op.
type ContextStore interface {
	PutDecision(ctx context.Context, key string, entry ContextEntry) error
}

// ContextReader lists the decisions a scope has accumulated
type ContextReader interface {
	ListDecisions(ctx context.Context, scope entities.Scope) ([]ContextEntry, error)
}

// SuggestedOutcome is an outcome proposed by the suggestion source
type SuggestedOutcome struct {
	Label string               `json:"label"`
	Type  entities.OutcomeType `json:"type"`
}

// Suggestions is advisory creation-time input
type Suggestions struct {
	Titles   []string           `json:"titles"`
	Outcomes []SuggestedOutcome `json:"outcomes"`
}

// SuggestionSource proposes titles and expected outcomes for a meeting purpose
type SuggestionSource interface {
	Suggest(ctx context.Context, purpose string) (*Suggestions, error)
}

package calendar

import (
	"context"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
)

// MockCalendar returns a deterministic event id and never provisions a join URL
type MockCalendar struct{}

var _ gateways.CalendarGateway = MockCalendar{}

// CreateEvent (mock) simulates event creation
func (MockCalendar) CreateEvent(ctx context.Context, meeting *entities.Meeting, opts gateways.CalendarOptions) (*gateways.CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &gateways.CalendarEvent{EventID: "mock-" + EventID(meeting.ID)}, nil
}

package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/pkg/config"
)

// GoogleCalendar creates events in a Google calendar
type GoogleCalendar struct {
	service    *gcal.Service
	calendarID string
	timeZone   string
}

var _ gateways.CalendarGateway = (*GoogleCalendar)(nil)

// NewGoogleCalendar authenticates with a stored refresh token
func NewGoogleCalendar(ctx context.Context, cfg *config.CalendarConfig) (*GoogleCalendar, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarEventsScope},
	}
	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	return NewGoogleCalendarWithOptions(ctx, cfg.CalendarID, cfg.TimeZone, option.WithTokenSource(ts))
}

// NewGoogleCalendarWithOptions builds the client from raw API options
func NewGoogleCalendarWithOptions(ctx context.Context, calendarID, timeZone string, opts ...option.ClientOption) (*GoogleCalendar, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendar{service: svc, calendarID: calendarID, timeZone: timeZone}, nil
}

// EventID derives the calendar event id from the meeting id. Google accepts
// client-chosen ids in base32hex, which lowercase hex is a subset of.
func EventID(meetingID fmt.Stringer) string {
	return strings.ReplaceAll(meetingID.String(), "-", "")
}

// CreateEvent inserts the event, or returns the existing one when a previous attempt succeeded
func (g *GoogleCalendar) CreateEvent(ctx context.Context, meeting *entities.Meeting, opts gateways.CalendarOptions) (*gateways.CalendarEvent, error) {
	if !meeting.HasSchedule() {
		return nil, fmt.Errorf("meeting %s has no schedule", meeting.ID)
	}

	event := g.buildEvent(meeting, opts)
	call := g.service.Events.Insert(g.calendarID, event).Context(ctx).SendUpdates("all")
	if opts.OnlineMeeting {
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		var gerr *googleapi.Error
		if !errors.As(err, &gerr) || gerr.Code != http.StatusConflict {
			return nil, fmt.Errorf("failed to create calendar event: %w", err)
		}
		created, err = g.service.Events.Get(g.calendarID, event.Id).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to load existing calendar event: %w", err)
		}
	}

	return &gateways.CalendarEvent{EventID: created.Id, JoinURL: created.HangoutLink}, nil
}

func (g *GoogleCalendar) buildEvent(meeting *entities.Meeting, opts gateways.CalendarOptions) *gcal.Event {
	event := &gcal.Event{
		Id:      EventID(meeting.ID),
		Summary: meeting.Title,
		Start: &gcal.EventDateTime{
			DateTime: meeting.ScheduledStart.Format(time.RFC3339),
			TimeZone: g.timeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: meeting.ScheduledEnd.Format(time.RFC3339),
			TimeZone: g.timeZone,
		},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{
				"meetingId": meeting.ID.String(),
				"scope":     meeting.Scope.String(),
			},
		},
	}
	if meeting.Purpose != nil {
		event.Description = *meeting.Purpose
	}

	for _, a := range meeting.Attendees {
		att := &gcal.EventAttendee{
			Email:     a.Email,
			Optional:  a.AttendeeType == entities.AttendeeTypeOptional,
			Organizer: a.IsOwner,
		}
		if a.DisplayName != nil {
			att.DisplayName = *a.DisplayName
		}
		event.Attendees = append(event.Attendees, att)
	}

	if opts.OnlineMeeting {
		event.ConferenceData = &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             meeting.ID.String(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		}
	}
	return event
}

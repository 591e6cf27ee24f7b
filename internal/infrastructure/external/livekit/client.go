package livekit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/pkg/config"
)

// RoomService is the subset of the LiveKit room API used here
type RoomService interface {
	CreateRoom(ctx context.Context, req *livekit.CreateRoomRequest) (*livekit.Room, error)
}

// roomMetadata is stored on the LiveKit room
type roomMetadata struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
	Scope     string `json:"scope"`
}

// RoomProvider provisions one LiveKit room per meeting
type RoomProvider struct {
	rooms   RoomService
	joinURL string
}

var _ gateways.OnlineRoomProvider = (*RoomProvider)(nil)

// NewRoomProvider creates a room provider. In mock mode no LiveKit call is made and
// only the join URL is derived.
func NewRoomProvider(cfg *config.LiveKitConfig) *RoomProvider {
	p := &RoomProvider{joinURL: strings.TrimRight(cfg.JoinURL, "/")}
	if !cfg.UseMock {
		p.rooms = lksdk.NewRoomServiceClient(cfg.URL, cfg.APIKey, cfg.APISecret)
	}
	return p
}

// NewRoomProviderWithService is used with a custom room service
func NewRoomProviderWithService(rooms RoomService, joinURL string) *RoomProvider {
	return &RoomProvider{rooms: rooms, joinURL: strings.TrimRight(joinURL, "/")}
}

// RoomName derives the LiveKit room name for a meeting
func RoomName(meeting *entities.Meeting) string {
	return "meeting-" + meeting.ID.String()
}

// CreateRoom creates (or reuses, LiveKit create is idempotent by name) the meeting room
// and returns its join URL
func (p *RoomProvider) CreateRoom(ctx context.Context, meeting *entities.Meeting) (string, error) {
	name := RoomName(meeting)
	if p.rooms == nil {
		return p.joinURL + "/" + name, nil
	}

	metadata, err := json.Marshal(roomMetadata{
		MeetingID: meeting.ID.String(),
		Title:     meeting.Title,
		Scope:     meeting.Scope.String(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode room metadata: %w", err)
	}

	req := &livekit.CreateRoomRequest{
		Name:             name,
		EmptyTimeout:     uint32(emptyTimeout(meeting).Seconds()),
		DepartureTimeout: 60,
		MaxParticipants:  uint32(len(meeting.Attendees) + 5),
		Metadata:         string(metadata),
	}

	room, err := p.rooms.CreateRoom(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create room: %w", err)
	}

	return p.joinURL + "/" + room.Name, nil
}

// emptyTimeout keeps the room alive for the meeting duration plus slack
func emptyTimeout(meeting *entities.Meeting) time.Duration {
	d := time.Duration(meeting.DurationMinutes) * time.Minute
	if d <= 0 {
		d = 30 * time.Minute
	}
	return d + 15*time.Minute
}

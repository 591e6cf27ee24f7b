package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
)

// MockClient hands out sequential task ids; used in mock mode
type MockClient struct {
	mu      sync.Mutex
	next    int
	urlBase string
}

var (
	_ gateways.TaskGateway  = (*MockClient)(nil)
	_ gateways.SubtaskStore = (*MockClient)(nil)
)

// NewMockClient creates a new mock task client
func NewMockClient(urlBase string) *MockClient {
	return &MockClient{urlBase: urlBase}
}

func (m *MockClient) nextID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("mock-task-%d", m.next)
}

// CreateOwnerTask (mock) simulates owner task creation
func (m *MockClient) CreateOwnerTask(ctx context.Context, meeting *entities.Meeting) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.nextID(), nil
}

// CreateSubtask (mock) simulates subtask creation
func (m *MockClient) CreateSubtask(ctx context.Context, req gateways.SubtaskRequest) (*entities.SubtaskRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := m.nextID()
	return &entities.SubtaskRef{ActionItemID: req.ActionItem.ID, TaskID: id, URL: m.urlBase + "/" + id}, nil
}

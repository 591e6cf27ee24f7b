package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/pkg/config"
)

// Client talks to a ClickUp v2 style task API
type Client struct {
	baseURL  string
	apiToken string
	listID   string
	client   *http.Client
}

var (
	_ gateways.TaskGateway  = (*Client)(nil)
	_ gateways.SubtaskStore = (*Client)(nil)
)

// NewClient creates a task API client
func NewClient(cfg *config.TasksConfig) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		listID:   cfg.ListID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// createTaskRequest is the body of POST /list/{list_id}/task
type createTaskRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	DueDate     int64    `json:"due_date,omitempty"`
	StartDate   int64    `json:"start_date,omitempty"`
	Parent      string   `json:"parent,omitempty"`
}

type taskResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateOwnerTask creates the accountability task for a scheduled meeting
func (c *Client) CreateOwnerTask(ctx context.Context, meeting *entities.Meeting) (string, error) {
	req := createTaskRequest{
		Name:        "Run meeting: " + meeting.Title,
		Description: ownerTaskDescription(meeting),
		Tags:        []string{"meeting", string(meeting.Scope.Type)},
	}
	if meeting.ScheduledStart != nil {
		req.StartDate = meeting.ScheduledStart.UnixMilli()
	}
	if meeting.ScheduledEnd != nil {
		req.DueDate = meeting.ScheduledEnd.UnixMilli()
	}
	if meeting.ParentTaskID != nil {
		req.Parent = *meeting.ParentTaskID
	}

	task, err := c.createTask(ctx, req)
	if err != nil {
		return "", err
	}
	return task.ID, nil
}

// CreateSubtask creates a task from an action item, under the parent task when one is set
func (c *Client) CreateSubtask(ctx context.Context, sr gateways.SubtaskRequest) (*entities.SubtaskRef, error) {
	req := createTaskRequest{
		Name:        sr.ActionItem.Text,
		Description: fmt.Sprintf("From meeting %q (%s), scope %s", sr.MeetingTitle, sr.MeetingID, sr.Scope),
		Tags:        []string{"action-item"},
	}
	if sr.ParentTaskID != nil {
		req.Parent = *sr.ParentTaskID
	}
	if sr.ActionItem.DueDate != nil {
		req.DueDate = sr.ActionItem.DueDate.UnixMilli()
	}
	if sr.ActionItem.OwnerID != nil {
		req.Description += fmt.Sprintf("\nOwner: %s", sr.ActionItem.OwnerID)
	}

	task, err := c.createTask(ctx, req)
	if err != nil {
		return nil, err
	}
	return &entities.SubtaskRef{ActionItemID: sr.ActionItem.ID, TaskID: task.ID, URL: task.URL}, nil
}

func (c *Client) createTask(ctx context.Context, body createTaskRequest) (*taskResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/list/%s/task", c.baseURL, c.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tasks api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tasks api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var task taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("tasks api: failed to decode response: %w", err)
	}
	if task.ID == "" {
		return nil, fmt.Errorf("tasks api: response has no task id")
	}
	return &task, nil
}

func ownerTaskDescription(meeting *entities.Meeting) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Meeting %s in %s.\n", meeting.ID, meeting.Scope)
	if meeting.Purpose != nil {
		fmt.Fprintf(&sb, "\nPurpose: %s\n", *meeting.Purpose)
	}
	if len(meeting.ExpectedOutcomes) > 0 {
		sb.WriteString("\nExpected outcomes:\n")
		for _, o := range meeting.ExpectedOutcomes {
			fmt.Fprintf(&sb, "- [%s] %s\n", o.Type, o.Label)
		}
	}
	return sb.String()
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-capture/pkg/config"
)

// GroqClient is a minimal client for Groq chat completions
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.groq.com"
	}

	return &GroqClient{
		apiKey:  cfg.APIKey,
		baseURL: base,
		model:   cfg.Model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks the model for a JSON object
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends the messages and returns the assistant content
func (g *GroqClient) Chat(ctx context.Context, reqBody ChatRequest) (string, error) {
	if reqBody.Model == "" {
		reqBody.Model = g.model
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}

// OutcomeSuggestion is one proposed expected outcome
type OutcomeSuggestion struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// MeetingSuggestions is the JSON document the model is asked to return
type MeetingSuggestions struct {
	Titles   []string            `json:"titles"`
	Outcomes []OutcomeSuggestion `json:"outcomes"`
}

const suggestPrompt = `You help plan meetings. Given the meeting purpose below, return a JSON object
{"titles": [up to 3 short titles], "outcomes": [up to 5 {"label": string, "type": one of
"decision","action_item","information","custom"}]}. Return JSON only.

Purpose: %s`

// SuggestMeeting asks the model for titles and expected outcomes
func (g *GroqClient) SuggestMeeting(ctx context.Context, purpose string) (*MeetingSuggestions, error) {
	content, err := g.Chat(ctx, ChatRequest{
		Messages:       []ChatMessage{{Role: "user", Content: fmt.Sprintf(suggestPrompt, purpose)}},
		Temperature:    0.3,
		MaxTokens:      800,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var out MeetingSuggestions
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	return &out, nil
}

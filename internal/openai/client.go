// Package openai calls an OpenAI-compatible chat-completions endpoint to
// summarize channel messages.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultHTTPTimeout bounds a single completion request.
	DefaultHTTPTimeout = 2 * time.Minute

	// Temperature and TopP are the fixed sampling parameters sent with
	// every request.
	Temperature = 0.75
	TopP        = 0.75

	// SystemPrompt instructs the model to summarize the user message.
	SystemPrompt = "You are a Slack summarizer bot. You must summarize the most recent messages sent in a Slack channel. The following are the messages:"

	// maxErrorBody caps how much of a non-JSON error body is quoted back.
	maxErrorBody = 512
)

// ErrNoChoices is returned when a completion response carries no choices.
var ErrNoChoices = errors.New("completion response contained no choices")

// Client sends summarization requests to a chat-completions endpoint.
type Client struct {
	token      string
	endpoint   string
	model      string
	maxTokens  int
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client posting to endpoint with a bearer token.
func NewClient(token, endpoint, model string, maxTokens int, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		token:      token,
		endpoint:   endpoint,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		log:        log.With("component", "openai"),
	}
}

// WithHTTPClient returns a new Client with the specified HTTP client.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	cp := *c
	cp.httpClient = client
	return &cp
}

// Summarize submits messages, joined by newlines, under the fixed system
// prompt and returns the first choice's content. An empty message list
// still sends an (empty) user message.
func (c *Client) Summarize(ctx context.Context, messages []string) (string, error) {
	body, err := json.Marshal(c.buildRequest(messages))
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("Sending completion request",
		"model", c.model, "messages", len(messages), "max_tokens", c.maxTokens)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending completion request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apiError(resp.Status, data)
	}

	var result chatResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("parsing completion response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrNoChoices
	}

	c.log.Debug("Received completion",
		"finish_reason", result.Choices[0].FinishReason,
		"completion_tokens", result.Usage.CompletionTokens)

	return result.Choices[0].Message.Content, nil
}

func (c *Client) buildRequest(messages []string) chatRequest {
	return chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: RoleSystem, Content: SystemPrompt},
			{Role: RoleUser, Content: strings.Join(messages, "\n")},
		},
		Temperature: Temperature,
		TopP:        TopP,
		MaxTokens:   c.maxTokens,
	}
}

// apiError builds an error from a non-2xx response, preferring the
// provider's error.message when the body is JSON.
func apiError(status string, body []byte) error {
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("completion API error (%s): %s", status, envelope.Error.Message)
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	if text == "" {
		return fmt.Errorf("completion API error: %s", status)
	}
	return fmt.Errorf("completion API error (%s): %s", status, text)
}

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"SongSense/logger"
	"SongSense/model"
)

// ClientConfig contains configuration for the analysis model client.
type ClientConfig struct {
	APIBaseURL  string
	APIKey      string
	Model       string
	Temperature float64
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new analysis model client.
func NewClient(config *ClientConfig) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Chat sends a system instruction and a user message and returns the
// model's reply. jsonMode demands a JSON-object response from models
// that support it.
func (c *Client) Chat(ctx context.Context, system, user string, maxTokens int, jsonMode bool) (string, error) {
	reqBody := model.OpenAIChatRequest{
		Model: c.config.Model,
		Messages: []model.OpenAIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: c.config.Temperature,
		Stream:      false,
	}
	if jsonMode {
		reqBody.ResponseFormat = &model.OpenAIResponseFormat{Type: "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.APIBaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp model.OpenAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	logger.Debug("Analysis model call completed",
		logger.String("model", c.config.Model),
		logger.Int("completionTokens", chatResp.Usage.CompletionTokens))

	return chatResp.Choices[0].Message.Content, nil
}

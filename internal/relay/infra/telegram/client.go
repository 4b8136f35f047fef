package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
	"gopkg.in/validator.v2"
)

const (
	defaultTimeout = 10 * time.Second

	// maxResponseSize bounds how much of a Telegram response is read
	maxResponseSize = 1 << 20
)

type Client struct {
	botURL     string
	httpClient *http.Client
}

type ClientConfig struct {
	BaseURL  string `validate:"nonzero"`
	BotToken string `validate:"nonzero"`
	Timeout  time.Duration
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		botURL:     strings.TrimSuffix(cfg.BaseURL, "/") + "/bot" + cfg.BotToken,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SendMessage posts input to sendMessage and decodes the response envelope.
// Telegram-side failures come back as a result with OK=false; an error is
// returned only when no decodable response was obtained.
func (c *Client) SendMessage(ctx context.Context, input core.TelegramMessageInput) (*core.TelegramResult, error) {
	apiURL := c.botURL + "/sendMessage"

	payloadBytes, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which contains the bot token
		slog.ErrorContext(ctx, "Failed to send Telegram message",
			"request_id", core.RequestIDFromContext(ctx),
			"error", redact(err.Error(), c.botURL))
		return nil, fmt.Errorf("failed to send request: %s", redact(err.Error(), c.botURL))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if !json.Valid(bodyBytes) {
		slog.ErrorContext(ctx, "Telegram API returned a non-JSON response",
			"request_id", core.RequestIDFromContext(ctx),
			"status_code", resp.StatusCode,
			"response", truncateForLog(string(bodyBytes)))
		return nil, fmt.Errorf("failed to decode response (status %d): invalid JSON", resp.StatusCode)
	}

	result := decodeEnvelope(bodyBytes)
	result.StatusCode = resp.StatusCode
	result.Raw = json.RawMessage(bodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.WarnContext(ctx, "Telegram API returned non-2xx status",
			"request_id", core.RequestIDFromContext(ctx),
			"status_code", resp.StatusCode,
			"description", result.Description)
	}

	return &result, nil
}

// decodeEnvelope reads the {ok,result,description,error_code} envelope from
// valid JSON. A body of any other shape is a failed call: OK stays false and
// only a string description is kept.
func decodeEnvelope(body []byte) core.TelegramResult {
	var result core.TelegramResult
	if err := json.Unmarshal(body, &result); err == nil {
		return result
	}

	var partial struct {
		Description string `json:"description"`
	}
	_ = json.Unmarshal(body, &partial)
	return core.TelegramResult{Description: partial.Description}
}

func redact(s, botURL string) string {
	return strings.ReplaceAll(s, botURL, "[telegram-bot-url]")
}

func truncateForLog(s string) string {
	const limit = 512
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

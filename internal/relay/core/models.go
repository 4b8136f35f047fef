package core

import (
	"encoding/json"
	"time"
)

// SubmissionRequest is an anonymous confession as received from a caller
type SubmissionRequest struct {
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
	Sender   string `json:"sender,omitempty"`
	Source   string `json:"source,omitempty"`
}

// TelegramMessageInput follows the sendMessage request body
type TelegramMessageInput struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// TelegramResult is the decoded Telegram Bot API response envelope
type TelegramResult struct {
	StatusCode  int             `json:"-"`
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Raw         json.RawMessage `json:"-"` // full upstream body, kept for diagnostics
}

// Succeeded reports whether both the HTTP status and the envelope flag signal success
func (r *TelegramResult) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300 && r.OK
}

// DeliveryOutcome classifies how a forwarded submission ended
type DeliveryOutcome string

const (
	OutcomeDelivered     DeliveryOutcome = "delivered"
	OutcomeUpstreamError DeliveryOutcome = "upstream_error"
	OutcomeFailed        DeliveryOutcome = "failed"
	OutcomeNotConfigured DeliveryOutcome = "not_configured"
)

// DeliveryMetrics describes one forwarding attempt. It never carries
// submission content.
type DeliveryMetrics struct {
	RequestID      string          `json:"request_id"`
	Outcome        DeliveryOutcome `json:"outcome"`
	UpstreamStatus int             `json:"upstream_status,omitempty"`
	Duration       time.Duration   `json:"duration"`
	Timestamp      time.Time       `json:"timestamp"`
}

package core

import (
	"context"
)

// Primary Ports (APIs that drive our application)

// SubmissionService forwards confessions to the configured Telegram chat
type SubmissionService interface {
	// ForwardSubmission validates, formats and delivers one submission
	ForwardSubmission(ctx context.Context, req SubmissionRequest) (*TelegramResult, error)

	// IsConfigured reports whether Telegram credentials are available
	IsConfigured() bool
}

// Secondary Ports (SPIs that are driven by our application)

// TelegramSender calls the Bot API sendMessage method. A non-nil error means
// no usable response was obtained; Telegram-side rejections are reported
// through the returned result.
type TelegramSender interface {
	SendMessage(ctx context.Context, input TelegramMessageInput) (*TelegramResult, error)
}

// MetricsCollector defines interface for collecting delivery metrics
type MetricsCollector interface {
	// RecordDelivery records the outcome of one forwarding attempt
	RecordDelivery(ctx context.Context, metrics DeliveryMetrics) error
}

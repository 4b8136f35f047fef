package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/validator.v2"
)

// Service implements the SubmissionService interface
type Service struct {
	telegram         TelegramSender
	chatID           string
	metricsCollector MetricsCollector
	location         *time.Location
	now              func() time.Time
	logger           *slog.Logger
}

// ServiceConfig holds the service dependencies. Telegram may be nil when
// no bot token is configured.
type ServiceConfig struct {
	Telegram         TelegramSender
	ChatID           string
	MetricsCollector MetricsCollector `validate:"nonnil"`
	Logger           *slog.Logger     `validate:"nonnil"`
	Location         *time.Location
	Now              func() time.Time
}

// NewService creates a new submission service with all dependencies
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid service configuration: %w", err)
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		telegram:         cfg.Telegram,
		chatID:           cfg.ChatID,
		metricsCollector: cfg.MetricsCollector,
		location:         location,
		now:              now,
		logger:           cfg.Logger,
	}, nil
}

// IsConfigured reports whether both Telegram credentials are available
func (s *Service) IsConfigured() bool {
	return s.telegram != nil && s.chatID != ""
}

// ForwardSubmission validates the request, formats it and performs exactly one
// sendMessage call. Telegram-side rejections are returned as *UpstreamError.
func (s *Service) ForwardSubmission(ctx context.Context, req SubmissionRequest) (*TelegramResult, error) {
	startTime := s.now()

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !s.IsConfigured() {
		s.logger.ErrorContext(ctx, "Telegram credentials missing, submission rejected",
			"request_id", RequestIDFromContext(ctx),
		)
		s.recordMetrics(ctx, startTime, OutcomeNotConfigured, 0)
		return nil, ErrServerNotConfigured
	}

	input := TelegramMessageInput{
		ChatID:    s.chatID,
		Text:      FormatConfession(req, startTime.In(s.location)),
		ParseMode: ParseModeMarkdownV2,
	}

	result, err := s.telegram.SendMessage(ctx, input)
	if err != nil {
		s.recordMetrics(ctx, startTime, OutcomeFailed, 0)
		return nil, fmt.Errorf("failed to send telegram message: %w", err)
	}

	if !result.Succeeded() {
		description := result.Description
		if description == "" {
			description = "Telegram API error"
		}

		s.logger.WarnContext(ctx, "Telegram rejected submission",
			"request_id", RequestIDFromContext(ctx),
			"status_code", result.StatusCode,
			"error_code", result.ErrorCode,
			"description", description,
		)
		s.recordMetrics(ctx, startTime, OutcomeUpstreamError, result.StatusCode)
		return nil, &UpstreamError{
			StatusCode:  result.StatusCode,
			Description: description,
			Payload:     result.Raw,
		}
	}

	s.logger.InfoContext(ctx, "Submission forwarded",
		"request_id", RequestIDFromContext(ctx),
		"anonymous", req.IsAnonymous(),
		"duration", s.now().Sub(startTime),
	)
	s.recordMetrics(ctx, startTime, OutcomeDelivered, result.StatusCode)

	return result, nil
}

// recordMetrics records the attempt. Failures are logged only.
func (s *Service) recordMetrics(ctx context.Context, startTime time.Time, outcome DeliveryOutcome, upstreamStatus int) {
	metrics := DeliveryMetrics{
		RequestID:      RequestIDFromContext(ctx),
		Outcome:        outcome,
		UpstreamStatus: upstreamStatus,
		Duration:       s.now().Sub(startTime),
		Timestamp:      startTime,
	}

	if err := s.metricsCollector.RecordDelivery(ctx, metrics); err != nil {
		s.logger.WarnContext(ctx, "Failed to record delivery metrics",
			"request_id", metrics.RequestID,
			"error", err.Error(),
		)
	}
}

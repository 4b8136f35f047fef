package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
)

// MaxBodyBytes caps the inbound request body
const MaxBodyBytes = 64 << 10

// SubmissionHandler handles confession submissions
type SubmissionHandler struct {
	service core.SubmissionService
	logger  *slog.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(service core.SubmissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger,
	}
}

// Handle accepts any method so non-POST requests get a JSON 405
func (h *SubmissionHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, NewErrorResponse("Method not allowed"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		h.logger.InfoContext(ctx, "Failed to read request body",
			"request_id", core.RequestIDFromContext(ctx),
			"error", err,
		)
		c.JSON(http.StatusBadRequest, NewErrorResponse("Invalid body"))
		return
	}

	req, err := core.ParseSubmission(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("Invalid body"))
		return
	}

	result, err := h.service.ForwardSubmission(ctx, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(result.Result))
}

func (h *SubmissionHandler) handleError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	requestID := core.RequestIDFromContext(ctx)

	var upstreamErr *core.UpstreamError
	switch {
	case errors.Is(err, core.ErrInvalidBody):
		c.JSON(http.StatusBadRequest, NewErrorResponse("Invalid body"))
	case errors.Is(err, core.ErrRequiredFieldsMissing):
		c.JSON(http.StatusBadRequest, NewErrorResponse("Both receiver and message are required"))
	case errors.Is(err, core.ErrServerNotConfigured):
		c.JSON(http.StatusInternalServerError, NewErrorResponse("Server not configured (missing token or chat id)"))
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, NewUpstreamErrorResponse(upstreamErr.Description, upstreamErr.Payload))
	default:
		h.logger.ErrorContext(ctx, "Failed to forward submission",
			"request_id", requestID,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, NewInternalErrorResponse(requestID))
	}
}

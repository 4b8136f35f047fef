package handlers

import "encoding/json"

// SuccessResponse wraps the Telegram result returned to the caller
type SuccessResponse struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
}

// ErrorResponse carries a short reason. TG holds the raw Telegram payload
// and is only set for upstream failures.
type ErrorResponse struct {
	Error     string          `json:"error"`
	TG        json.RawMessage `json:"tg,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

func NewSuccessResponse(result json.RawMessage) *SuccessResponse {
	return &SuccessResponse{
		OK:     true,
		Result: result,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Error: message,
	}
}

func NewUpstreamErrorResponse(message string, payload json.RawMessage) *ErrorResponse {
	return &ErrorResponse{
		Error: message,
		TG:    payload,
	}
}

// NewInternalErrorResponse hides the failure detail and only exposes the
// request ID for correlation with the server log
func NewInternalErrorResponse(requestID string) *ErrorResponse {
	return &ErrorResponse{
		Error:     "Internal server error",
		RequestID: requestID,
	}
}

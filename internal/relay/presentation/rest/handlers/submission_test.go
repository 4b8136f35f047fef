package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/presentation/rest/handlers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) ForwardSubmission(ctx context.Context, req core.SubmissionRequest) (*core.TelegramResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.TelegramResult), args.Error(1)
}

func (m *MockSubmissionService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func setupRouter(service core.SubmissionService) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := handlers.NewSubmissionHandler(service, logger)

	router := gin.New()
	router.Any("/api/send", handler.Handle)
	return router
}

func doRequest(router http.Handler, method, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, "/api/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func TestSubmissionHandler_MethodNotAllowed(t *testing.T) {
	service := &MockSubmissionService{}
	router := setupRouter(service)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			rec, body := doRequest(router, method, `{"receiver":"a","message":"b"}`)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "Method not allowed", body["error"])
			assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
		})
	}

	service.AssertNotCalled(t, "ForwardSubmission", mock.Anything, mock.Anything)
}

func TestSubmissionHandler_InvalidBody(t *testing.T) {
	service := &MockSubmissionService{}
	router := setupRouter(service)

	for _, payload := range []string{"", "null", "[]", `"text"`, "{broken"} {
		rec, body := doRequest(router, http.MethodPost, payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload %q", payload)
		assert.Equal(t, "Invalid body", body["error"])
	}

	service.AssertNotCalled(t, "ForwardSubmission", mock.Anything, mock.Anything)
}

func TestSubmissionHandler_BodyTooLarge(t *testing.T) {
	service := &MockSubmissionService{}
	router := setupRouter(service)

	payload := `{"receiver":"a","message":"` + strings.Repeat("x", handlers.MaxBodyBytes) + `"}`
	rec, body := doRequest(router, http.MethodPost, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid body", body["error"])
}

func TestSubmissionHandler_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
		expectTG       bool
	}{
		{
			name:           "required fields missing",
			err:            core.NewValidationError("receiver", "must not be empty", core.ErrRequiredFieldsMissing),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Both receiver and message are required",
		},
		{
			name:           "server not configured",
			err:            core.ErrServerNotConfigured,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Server not configured (missing token or chat id)",
		},
		{
			name: "upstream rejected",
			err: &core.UpstreamError{
				StatusCode:  400,
				Description: "chat not found",
				Payload:     json.RawMessage(`{"ok":false,"description":"chat not found"}`),
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "chat not found",
			expectTG:       true,
		},
		{
			name:           "unexpected failure",
			err:            errors.New("failed to send telegram message: connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := &MockSubmissionService{}
			service.On("ForwardSubmission", mock.Anything, mock.Anything).Return(nil, tc.err)
			router := setupRouter(service)

			rec, body := doRequest(router, http.MethodPost, `{"receiver":"a","message":"b"}`)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedError, body["error"])
			if tc.expectTG {
				assert.Equal(t, map[string]any{"ok": false, "description": "chat not found"}, body["tg"])
			} else {
				assert.NotContains(t, body, "tg")
			}
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

func TestSubmissionHandler_Success(t *testing.T) {
	service := &MockSubmissionService{}
	service.On("ForwardSubmission", mock.Anything, core.SubmissionRequest{
		Receiver: "Alex",
		Message:  "hi",
		Sender:   "42",
	}).Return(&core.TelegramResult{
		StatusCode: 200,
		OK:         true,
		Result:     json.RawMessage(`{"message_id":9}`),
	}, nil)
	router := setupRouter(service)

	rec, _ := doRequest(router, http.MethodPost, `{"receiver":"Alex","message":"hi","sender":42}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"result":{"message_id":9}}`, rec.Body.String())
	service.AssertExpectations(t)
}

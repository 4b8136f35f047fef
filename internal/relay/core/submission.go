package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field limits, counted in Unicode code points
const (
	MaxReceiverLength = 80
	MaxMessageLength  = 2000
	MaxSenderLength   = 60
	MaxSourceLength   = 100
)

// ParseSubmission decodes a raw request body. The body must be a single
// JSON object; scalar field values of any JSON type are coerced to strings.
func ParseSubmission(body []byte) (SubmissionRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return SubmissionRequest{}, NewValidationError("body", "malformed JSON", ErrInvalidBody)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return SubmissionRequest{}, NewValidationError("body", "trailing data after JSON object", ErrInvalidBody)
	}

	fields, ok := raw.(map[string]any)
	if !ok || fields == nil {
		return SubmissionRequest{}, NewValidationError("body", "expected a JSON object", ErrInvalidBody)
	}

	return SubmissionRequest{
		Receiver: coerceString(fields["receiver"]),
		Message:  coerceString(fields["message"]),
		Sender:   coerceString(fields["sender"]),
		Source:   coerceString(fields["source"]),
	}, nil
}

// Normalize trims every field and truncates it to its limit.
// Over-long input is cut, never rejected.
func (r SubmissionRequest) Normalize() SubmissionRequest {
	return SubmissionRequest{
		Receiver: clip(r.Receiver, MaxReceiverLength),
		Message:  clip(r.Message, MaxMessageLength),
		Sender:   clip(r.Sender, MaxSenderLength),
		Source:   clip(r.Source, MaxSourceLength),
	}
}

// Validate checks the required fields of a normalized request
func (r SubmissionRequest) Validate() error {
	if r.Receiver == "" {
		return NewValidationError("receiver", "must not be empty", ErrRequiredFieldsMissing)
	}
	if r.Message == "" {
		return NewValidationError("message", "must not be empty", ErrRequiredFieldsMissing)
	}
	return nil
}

// IsAnonymous reports whether the submission carries no sender
func (r SubmissionRequest) IsAnonymous() bool {
	return r.Sender == ""
}

func clip(s string, limit int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	// cutting may expose whitespace that was interior before
	return strings.TrimSpace(string([]rune(s)[:limit]))
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

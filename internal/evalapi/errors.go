package evalapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx response from the evaluation service.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("evaluation api %s: http %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("evaluation api: http %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// newAPIError reads the message from a FastAPI {"detail"} or generic {"message"} body,
// falling back to the raw body or the status text.
func newAPIError(endpoint string, status int, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case len(payload.Detail) > 0:
			var detail string
			if err := json.Unmarshal(payload.Detail, &detail); err == nil {
				msg = detail
			} else {
				msg = string(payload.Detail)
			}
		case payload.Message != "":
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg, Endpoint: endpoint}
}

package telegram

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Response is the outcome of a single Bot API call. It is returned whether the call
// succeeded or not, so callers can always inspect what came back.
type Response struct {
	// RequestID is generated per call and appears in the failure log line.
	RequestID  string
	Method     string
	StatusCode int
	// Body is the raw response body; empty when the request never got an answer.
	Body string
	// Err is set for transport failures: timeouts, refused connections, cancelled
	// contexts.
	Err error
}

// IsSuccess reports whether the request reached Telegram and got a 2xx back.
func (r *Response) IsSuccess() bool {
	return r != nil && r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Description returns the "description" field Telegram puts into error bodies,
// e.g. "Unauthorized" or "Bad Request: chat not found".
func (r *Response) Description() string {
	if r == nil || !gjson.Valid(r.Body) {
		return ""
	}
	return gjson.Get(r.Body, "description").String()
}

// AsError converts a failed response into an error. It returns nil on success.
func (r *Response) AsError() error {
	if r == nil {
		return fmt.Errorf("no response")
	}
	if r.IsSuccess() {
		return nil
	}
	if r.Err != nil {
		return r.Err
	}
	if desc := r.Description(); desc != "" {
		return fmt.Errorf("telegram %s failed with status %d: %s", r.Method, r.StatusCode, desc)
	}
	return fmt.Errorf("telegram %s failed with status %d", r.Method, r.StatusCode)
}

func (r *Response) String() string {
	if r == nil {
		return "<nil>"
	}
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Method, r.Err)
	}
	return fmt.Sprintf("%s: %d %s: %s", r.Method, r.StatusCode,
		http.StatusText(r.StatusCode), r.Body)
}

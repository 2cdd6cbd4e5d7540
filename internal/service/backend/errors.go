package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const maxErrorBody = 512

// ErrFilesNotSupported is returned when a JSON resource is handed file uploads.
var ErrFilesNotSupported = errors.New("resource does not accept file uploads")

// StatusError is a non-2xx answer from the backend. Body keeps the start of the
// response, which for validation failures names the offending fields.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func newStatusError(method, url string, status int, body []byte) *StatusError {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return &StatusError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       text,
	}
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: request failed with status: %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: request failed with status: %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

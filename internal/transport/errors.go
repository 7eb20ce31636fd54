package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is returned for responses with a status of 400 or above.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	// Detail is the service's "detail" message, or the start of the body
	// when the body is not a JSON object.
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("transport: %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// Temporary reports whether retrying the same request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func newAPIError(status int, method, path string, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Detail:     errorDetail(body),
		Body:       body,
	}
}

// errorDetail prefers the "detail" field; otherwise field errors are joined
// as "key: message" in key order.
func errorDetail(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return text
	}
	if detail, ok := obj["detail"].(string); ok {
		return detail
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b bytes.Buffer
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %v", k, flatten(obj[k]))
	}
	return b.String()
}

func flatten(v any) string {
	list, ok := v.([]any)
	if !ok {
		return fmt.Sprint(v)
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, ", ")
}

package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"strings"
)

var (
	// ErrNotJSON means the body is not a JSON object.
	ErrNotJSON = errors.New("request must be a JSON object")
	// ErrMissingOrEmptyList means the field is absent, not a list of
	// strings, or empty.
	ErrMissingOrEmptyList = errors.New("missing or empty list")
)

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrNotJSON) {
		return fmt.Sprintf("Request must be JSON: expected an object with '%s'.", e.Field)
	}
	return fmt.Sprintf("Invalid input: '%s' must be a non-empty list of strings.", e.Field)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsJSONContentType reports whether a Content-Type header denotes JSON.
func IsJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// ParseList extracts the non-empty list of strings stored under field in a
// JSON object body.
func ParseList(body []byte, field string) ([]string, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil || object == nil {
		return nil, &ValidationError{Field: field, Err: ErrNotJSON}
	}

	raw, ok := object[field]
	if !ok {
		return nil, &ValidationError{Field: field, Err: ErrMissingOrEmptyList}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, &ValidationError{Field: field, Err: ErrMissingOrEmptyList}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) || json.Unmarshal(item, &s) != nil {
			return nil, &ValidationError{Field: field, Err: ErrMissingOrEmptyList}
		}
		out = append(out, s)
	}
	return out, nil
}

package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
)

// RateLimitedMessage is shown verbatim on HTTP 429; the user retries manually.
const RateLimitedMessage = "Demasiadas peticiones. Intenta de nuevo en unos segundos."

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

func IsRateLimited(err error) bool {
	return IsStatus(err, http.StatusTooManyRequests)
}

// FlattenMessage collapses a backend error body into one display string.
// Validation failures arrive as {"field": ["msg", ...]} or as a bare array of
// messages; anything that is not JSON is returned as-is.
func FlattenMessage(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}

	var asList []interface{}
	if err := json.Unmarshal([]byte(trimmed), &asList); err == nil {
		return joinValues(asList)
	}

	var asMap map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &asMap); err == nil {
		keys := make([]string, 0, len(asMap))
		for k := range asMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if v := flattenValue(asMap[k]); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, " ")
	}

	var asString string
	if err := json.Unmarshal([]byte(trimmed), &asString); err == nil {
		return asString
	}

	return trimmed
}

func joinValues(values []interface{}) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if s := flattenValue(v); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func flattenValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		return joinValues(t)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// Friendly maps err to the message shown to the user. Rate limiting gets the
// fixed notice, other backend errors surface their flattened body, and
// network or timeout failures fall back to the caller's message.
func Friendly(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusTooManyRequests {
			return RateLimitedMessage
		}
		if msg := FlattenMessage(apiErr.Body); msg != "" {
			return msg
		}
	}
	return fallback
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable wraps transport failures: refused connections, DNS errors,
// timeouts and cancelled contexts.
var ErrUnreachable = errors.New("backend unreachable")

// APIError is a response with a non-2xx status
type APIError struct {
	StatusCode int
	// Detail is the backend's human-readable message, empty if none was sent
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Detail)
}

// Message returns the backend detail carried by err, or fallback
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// IsUnauthorized reports whether the backend rejected the credentials
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// parseAPIError builds an APIError from an error body. Only a string detail
// is surfaced; structured details are dropped.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
	}
	return apiErr
}

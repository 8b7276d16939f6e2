package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the two upstream failure modes callers branch on.
// Wrap-and-check with errors.Is.
var (
	ErrInvalidCredentials = errors.New("provider: invalid credentials")
	ErrRateLimited        = errors.New("provider: rate limited")
)

// UpstreamError is any other non-2xx response from a provider API.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// classifyStatus converts a non-2xx provider response into a typed error.
func classifyStatus(providerName string, status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if message != "" {
			return fmt.Errorf("%w: %s: %s", ErrInvalidCredentials, providerName, message)
		}
		return fmt.Errorf("%w: %s rejected the API key (status %d)", ErrInvalidCredentials, providerName, status)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s (status %d)", ErrRateLimited, providerName, status)
	default:
		return &UpstreamError{Provider: providerName, StatusCode: status, Message: message}
	}
}

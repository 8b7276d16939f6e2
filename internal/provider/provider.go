// Package provider implements per-request clients for the remote
// text-generation APIs. Credentials are supplied by the caller on every
// request and are never stored server-side.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client sends a fully-filled prompt to a remote model and returns the
// raw text completion.
type Client interface {
	// Name returns a human-readable name for this client.
	Name() string

	// Complete sends the prompt and returns the model's text output.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// New returns a Client for the given provider tag. The returned client
// is single-use in spirit: it carries the caller's credential and model
// choice for one request.
func New(providerID, model, apiKey string) (Client, error) {
	httpClient := &http.Client{Timeout: 120 * time.Second}

	switch strings.ToLower(providerID) {
	case "anthropic":
		return &Anthropic{Model: model, APIKey: apiKey, Client: httpClient}, nil
	case "openai":
		return &OpenAI{Model: model, APIKey: apiKey, Client: httpClient}, nil
	case "openrouter":
		return &OpenAI{
			BaseURL:  openRouterBaseURL,
			Model:    model,
			APIKey:   apiKey,
			Client:   httpClient,
			provider: "openrouter",
		}, nil
	default:
		return nil, fmt.Errorf("provider: unsupported provider %q", providerID)
	}
}

// keyPrefixes maps provider tags to the prefix their API keys carry.
var keyPrefixes = map[string]string{
	"anthropic":  "sk-ant-",
	"openai":     "sk-",
	"openrouter": "sk-or-",
}

// ValidateKeyFormat rejects obviously malformed credentials before any
// remote call is made. Unknown providers pass; New rejects them later.
func ValidateKeyFormat(providerID, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("%w: API key is required for %s", ErrInvalidCredentials, providerID)
	}
	prefix, ok := keyPrefixes[strings.ToLower(providerID)]
	if !ok {
		return nil
	}
	if !strings.HasPrefix(apiKey, prefix) {
		return fmt.Errorf("%w: %s API keys should start with %q", ErrInvalidCredentials, providerID, prefix)
	}
	return nil
}

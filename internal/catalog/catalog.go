// Package catalog holds the static provider and model listings exposed
// by the API. The catalog is read-only after process start.
package catalog

// ProviderInfo describes an LLM provider exposed via GET /api/providers.
type ProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ModelInfo describes a model exposed via GET /api/models/{provider}.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var providers = []ProviderInfo{
	{ID: "openrouter", Name: "OpenRouter"},
	{ID: "anthropic", Name: "Anthropic"},
	{ID: "openai", Name: "OpenAI"},
}

var models = map[string][]ModelInfo{
	"anthropic": {
		{ID: "claude-3-5-haiku-20241022", Name: "Claude 3.5 Haiku"},
		{ID: "claude-3-5-sonnet-20241022", Name: "Claude 3.5 Sonnet"},
		{ID: "claude-3-opus-20240229", Name: "Claude 3 Opus"},
	},
	"openai": {
		{ID: "gpt-4o", Name: "GPT-4o"},
		{ID: "gpt-4o-mini", Name: "GPT-4o Mini"},
		{ID: "gpt-4-turbo", Name: "GPT-4 Turbo"},
	},
	"openrouter": {
		{ID: "anthropic/claude-3.5-haiku", Name: "Claude 3.5 Haiku (OpenRouter)"},
		{ID: "anthropic/claude-3.5-sonnet", Name: "Claude 3.5 Sonnet (OpenRouter)"},
		{ID: "openai/gpt-4o", Name: "GPT-4o (OpenRouter)"},
		{ID: "google/gemini-pro-1.5", Name: "Gemini Pro 1.5 (OpenRouter)"},
	},
}

// Providers returns all known providers in display order.
func Providers() []ProviderInfo {
	out := make([]ProviderInfo, len(providers))
	copy(out, providers)
	return out
}

// Models returns the models for a provider. The second return value is
// false when the provider is unknown.
func Models(providerID string) ([]ModelInfo, bool) {
	ms, ok := models[providerID]
	if !ok {
		return nil, false
	}
	out := make([]ModelInfo, len(ms))
	copy(out, ms)
	return out, true
}

// Exists reports whether the provider is in the catalog.
func Exists(providerID string) bool {
	_, ok := models[providerID]
	return ok
}

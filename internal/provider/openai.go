package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	openAIDefaultBaseURL = "https://api.openai.com"
	openRouterBaseURL    = "https://openrouter.ai/api"
)

// OpenAI connects to an OpenAI-compatible chat completions API. With
// BaseURL pointed at OpenRouter it serves as the OpenRouter client too,
// since OpenRouter speaks the same protocol.
type OpenAI struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client

	// provider overrides the name used in errors ("openai" by default).
	provider string
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (o *OpenAI) providerName() string {
	if o.provider != "" {
		return o.provider
	}
	return "openai"
}

func (o *OpenAI) Name() string {
	if o.providerName() == "openrouter" {
		return fmt.Sprintf("OpenRouter (%s)", o.Model)
	}
	return fmt.Sprintf("OpenAI (%s)", o.Model)
}

func (o *OpenAI) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	name := o.providerName()

	reqBody := openAIChatRequest{
		Model: o.Model,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%s: marshal request: %w", name, err)
	}

	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}
	url := strings.TrimRight(baseURL, "/") + "/v1/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: create request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: request: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp openAIErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return "", classifyStatus(name, resp.StatusCode, errResp.Error.Message)
	}

	var chatResp openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", name, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", &UpstreamError{Provider: name, StatusCode: resp.StatusCode, Message: "empty choices"}
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

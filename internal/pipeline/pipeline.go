// Package pipeline sequences the three model calls (validate, summarize,
// describe-graph) and the render step for one processing request. Stages
// run strictly in order; the first failure short-circuits the rest.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/y0sif/lexi-graph/internal/dot"
	"github.com/y0sif/lexi-graph/internal/metrics"
	"github.com/y0sif/lexi-graph/internal/prompt"
	"github.com/y0sif/lexi-graph/internal/provider"
	"github.com/y0sif/lexi-graph/internal/renderer"
)

// Error codes surfaced in Result.ErrorCode.
const (
	CodeInvalidInput = "invalid_input"
	CodeCredential   = "credential"
	CodeUpstream     = "upstream"
	CodeRender       = "render"
	CodeNotFound     = "not_found"
)

// Per-stage completion budgets. Validation answers with a single word;
// the summary and graph stages need room for large structures.
const (
	validateMaxTokens  = 1000
	summarizeMaxTokens = 12000
	graphMaxTokens     = 12000
)

const rejectionMessage = "Invalid content type detected. Please provide educational content " +
	"such as lectures, tutorials, or informational articles suitable for creating knowledge graphs."

// Request is one processing submission. The credential travels with the
// request and is never retained.
type Request struct {
	Text     string
	Provider string
	Model    string
	APIKey   string
}

// Result is returned to the caller as the /api/process response body.
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	GraphPath string `json:"graph_path,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// ClientFactory builds a provider client for one request.
type ClientFactory func(providerID, model, apiKey string) (provider.Client, error)

// Pipeline holds the per-process collaborators. Safe for concurrent use;
// each Run is independent.
type Pipeline struct {
	NewClient     ClientFactory
	Renderer      renderer.Renderer
	MinInputChars int
}

// Run executes the full chain for one request. All failures come back as
// a Result with Success=false; Run never panics or returns an error
// because every outcome is a well-formed response to the caller.
func (p *Pipeline) Run(ctx context.Context, req Request) Result {
	text := strings.TrimSpace(req.Text)

	// Local gates run before any remote call. Lengths count runes, not
	// bytes, so non-Latin lectures are measured the same as English ones.
	if text == "" {
		return failure(CodeInvalidInput, "Please enter some lecture content to process.", "")
	}
	if utf8.RuneCountInString(text) < p.MinInputChars {
		msg := fmt.Sprintf("Please enter at least %d characters of lecture content.", p.MinInputChars)
		return failure(CodeInvalidInput, msg, "")
	}
	if err := provider.ValidateKeyFormat(req.Provider, req.APIKey); err != nil {
		return failure(CodeCredential, credentialMessage(req.Provider), err.Error())
	}

	client, err := p.NewClient(req.Provider, req.Model, req.APIKey)
	if err != nil {
		return failure(CodeInvalidInput, fmt.Sprintf("Unsupported provider: %s", req.Provider), err.Error())
	}

	verdict, err := p.runStage(ctx, client, "validate", prompt.Validate(text), validateMaxTokens)
	if err != nil {
		return providerFailure(req.Provider, err)
	}
	if strings.Contains(strings.ToUpper(verdict), "INVALID") {
		return failure(CodeInvalidInput, rejectionMessage, "")
	}

	summary, err := p.runStage(ctx, client, "summarize", prompt.Summarize(text), summarizeMaxTokens)
	if err != nil {
		return providerFailure(req.Provider, err)
	}

	rawDot, err := p.runStage(ctx, client, "describe_graph", prompt.DescribeGraph(summary), graphMaxTokens)
	if err != nil {
		return providerFailure(req.Provider, err)
	}
	dotSource := dot.Clean(rawDot)

	start := time.Now()
	filename, err := p.Renderer.Render(ctx, dotSource)
	metrics.StageDuration.WithLabelValues("render").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RendersTotal.WithLabelValues(p.Renderer.Name(), "failure").Inc()
		return failure(CodeRender, "Failed to render the knowledge graph.", err.Error())
	}
	metrics.RendersTotal.WithLabelValues(p.Renderer.Name(), "success").Inc()

	return Result{
		Success:   true,
		Message:   "Graph generated successfully",
		GraphPath: filename,
		Summary:   summary,
	}
}

func (p *Pipeline) runStage(ctx context.Context, client provider.Client, stage, stagePrompt string, maxTokens int) (string, error) {
	start := time.Now()
	out, err := client.Complete(ctx, stagePrompt, maxTokens)
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("%s stage: %w", stage, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%s stage: empty model response", stage)
	}
	return out, nil
}

func failure(code, message, detail string) Result {
	return Result{
		Success:   false,
		Message:   message,
		Error:     detail,
		ErrorCode: code,
	}
}

func providerFailure(providerID string, err error) Result {
	switch {
	case errors.Is(err, provider.ErrInvalidCredentials):
		return failure(CodeCredential, credentialMessage(providerID), err.Error())
	case errors.Is(err, provider.ErrRateLimited):
		return failure(CodeUpstream, fmt.Sprintf("%s is rate limiting requests; try again shortly.", providerID), err.Error())
	default:
		return failure(CodeUpstream, "The model provider failed to process the request.", err.Error())
	}
}

func credentialMessage(providerID string) string {
	return fmt.Sprintf("The API key was rejected for %s. Check the key and try again.", providerID)
}

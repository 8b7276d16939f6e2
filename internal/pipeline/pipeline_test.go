package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/y0sif/lexi-graph/internal/provider"
)

const lectureText = "Welcome to this short lecture on Artificial Intelligence. AI refers to the " +
	"capability of machines to perform tasks that typically require human intelligence, such as " +
	"understanding language, recognizing images, or making decisions."

const mockDot = "digraph G {\n  AI [label=\"AI\"];\n  ML [label=\"ML\"];\n  AI -> ML;\n}"

// fakeRenderer records render calls and hands out sequential filenames.
type fakeRenderer struct {
	mu    sync.Mutex
	calls int
	err   error
	srcs  []string
}

func (f *fakeRenderer) Name() string    { return "fake" }
func (f *fakeRenderer) Available() bool { return true }

func (f *fakeRenderer) Render(ctx context.Context, dotSource string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.srcs = append(f.srcs, dotSource)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("graph_test_%d.png", f.calls), nil
}

func mockFactory(m *provider.Mock) ClientFactory {
	return func(providerID, model, apiKey string) (provider.Client, error) {
		return m, nil
	}
}

func newPipeline(m *provider.Mock, r *fakeRenderer) *Pipeline {
	return &Pipeline{
		NewClient:     mockFactory(m),
		Renderer:      r,
		MinInputChars: 50,
	}
}

func validRequest() Request {
	return Request{
		Text:     lectureText,
		Provider: "anthropic",
		Model:    "claude-3-5-haiku-20241022",
		APIKey:   "sk-ant-test",
	}
}

func TestRunFullSuccess(t *testing.T) {
	m := &provider.Mock{Responses: []string{"VALID", "AI:\n- ML", mockDot}}
	r := &fakeRenderer{}
	p := newPipeline(m, r)

	res := p.Run(context.Background(), validRequest())

	if !res.Success {
		t.Fatalf("success: got false, message=%q error=%q", res.Message, res.Error)
	}
	if res.GraphPath == "" {
		t.Error("graph path empty")
	}
	if res.Summary != "AI:\n- ML" {
		t.Errorf("summary: got %q", res.Summary)
	}
	if m.Calls() != 3 {
		t.Errorf("provider calls: got %d, want 3", m.Calls())
	}
	if r.calls != 1 {
		t.Errorf("render calls: got %d, want 1", r.calls)
	}
}

func TestRunShortInputNoProviderCall(t *testing.T) {
	m := &provider.Mock{Responses: []string{"VALID"}}
	r := &fakeRenderer{}
	p := newPipeline(m, r)

	req := validRequest()
	req.Text = "too short"
	res := p.Run(context.Background(), req)

	if res.Success {
		t.Error("success: got true, want false")
	}
	if res.ErrorCode != CodeInvalidInput {
		t.Errorf("error code: got %q, want %q", res.ErrorCode, CodeInvalidInput)
	}
	if !strings.Contains(res.Message, "50 characters") {
		t.Errorf("message should name the minimum length, got %q", res.Message)
	}
	if m.Calls() != 0 {
		t.Errorf("provider calls: got %d, want 0", m.Calls())
	}
	if r.calls != 0 {
		t.Errorf("render calls: got %d, want 0", r.calls)
	}
}

func TestRunMinLengthCountsRunes(t *testing.T) {
	// 31 characters, 58 bytes: a byte-based gate would wave this through.
	const shortArabic = "الذكاء الاصطناعي هو قدرة الآلات"
	// 80 characters: must pass the same gate.
	const fullArabic = "الذكاء الاصطناعي هو قدرة الآلات على أداء مهام تتطلب ذكاء بشريا مثل الفهم والتعلم"

	t.Run("short non-Latin text rejected", func(t *testing.T) {
		m := &provider.Mock{Responses: []string{"VALID"}}
		p := newPipeline(m, &fakeRenderer{})

		req := validRequest()
		req.Text = shortArabic
		res := p.Run(context.Background(), req)

		if res.Success || res.ErrorCode != CodeInvalidInput {
			t.Errorf("got success=%v code=%q, want invalid_input", res.Success, res.ErrorCode)
		}
		if m.Calls() != 0 {
			t.Errorf("provider calls: got %d, want 0", m.Calls())
		}
	})

	t.Run("full-length non-Latin text passes the gate", func(t *testing.T) {
		m := &provider.Mock{Responses: []string{"VALID", "summary", mockDot}}
		p := newPipeline(m, &fakeRenderer{})

		req := validRequest()
		req.Text = fullArabic
		res := p.Run(context.Background(), req)

		if !res.Success {
			t.Fatalf("run failed: message=%q error=%q", res.Message, res.Error)
		}
		if m.Calls() != 3 {
			t.Errorf("provider calls: got %d, want 3", m.Calls())
		}
	})
}

func TestRunEmptyInput(t *testing.T) {
	m := &provider.Mock{}
	p := newPipeline(m, &fakeRenderer{})

	req := validRequest()
	req.Text = "   "
	res := p.Run(context.Background(), req)

	if res.Success || res.ErrorCode != CodeInvalidInput {
		t.Errorf("got success=%v code=%q", res.Success, res.ErrorCode)
	}
	if m.Calls() != 0 {
		t.Errorf("provider calls: got %d, want 0", m.Calls())
	}
}

func TestRunBadKeyFormatNoProviderCall(t *testing.T) {
	m := &provider.Mock{Responses: []string{"VALID"}}
	p := newPipeline(m, &fakeRenderer{})

	req := validRequest()
	req.APIKey = "sk-wrong-prefix"
	res := p.Run(context.Background(), req)

	if res.Success {
		t.Error("success: got true, want false")
	}
	if res.ErrorCode != CodeCredential {
		t.Errorf("error code: got %q, want %q", res.ErrorCode, CodeCredential)
	}
	if m.Calls() != 0 {
		t.Errorf("provider calls: got %d, want 0", m.Calls())
	}
}

func TestRunValidationRejectionShortCircuits(t *testing.T) {
	m := &provider.Mock{Responses: []string{"INVALID"}}
	r := &fakeRenderer{}
	p := newPipeline(m, r)

	res := p.Run(context.Background(), validRequest())

	if res.Success {
		t.Error("success: got true, want false")
	}
	if res.ErrorCode != CodeInvalidInput {
		t.Errorf("error code: got %q, want %q", res.ErrorCode, CodeInvalidInput)
	}
	if m.Calls() != 1 {
		t.Errorf("provider calls: got %d, want 1 (validation only)", m.Calls())
	}
	if r.calls != 0 {
		t.Errorf("render calls: got %d, want 0", r.calls)
	}
}

func TestRunCredentialRejectedUpstream(t *testing.T) {
	m := &provider.Mock{Err: fmt.Errorf("%w: anthropic rejected the API key (status 401)", provider.ErrInvalidCredentials)}
	r := &fakeRenderer{}
	p := newPipeline(m, r)

	res := p.Run(context.Background(), validRequest())

	if res.Success {
		t.Error("success: got true, want false")
	}
	if res.ErrorCode != CodeCredential {
		t.Errorf("error code: got %q, want %q", res.ErrorCode, CodeCredential)
	}
	if res.GraphPath != "" {
		t.Errorf("graph path: got %q, want empty", res.GraphPath)
	}
	if r.calls != 0 {
		t.Errorf("render calls: got %d, want 0", r.calls)
	}
}

func TestRunUpstreamError(t *testing.T) {
	m := &provider.Mock{Err: &provider.UpstreamError{Provider: "openai", StatusCode: 503, Message: "overloaded"}}
	p := newPipeline(m, &fakeRenderer{})

	res := p.Run(context.Background(), validRequest())

	if res.Success || res.ErrorCode != CodeUpstream {
		t.Errorf("got success=%v code=%q, want upstream failure", res.Success, res.ErrorCode)
	}
	if res.Error == "" {
		t.Error("error detail empty")
	}
}

func TestRunRateLimited(t *testing.T) {
	m := &provider.Mock{Err: fmt.Errorf("%w: anthropic (status 429)", provider.ErrRateLimited)}
	p := newPipeline(m, &fakeRenderer{})

	res := p.Run(context.Background(), validRequest())

	if res.Success || res.ErrorCode != CodeUpstream {
		t.Errorf("got success=%v code=%q, want upstream failure", res.Success, res.ErrorCode)
	}
}

func TestRunRenderFailure(t *testing.T) {
	m := &provider.Mock{Responses: []string{"VALID", "summary", mockDot}}
	r := &fakeRenderer{err: fmt.Errorf("render (graphviz): syntax error near line 2")}
	p := newPipeline(m, r)

	res := p.Run(context.Background(), validRequest())

	if res.Success {
		t.Error("success: got true, want false")
	}
	if res.ErrorCode != CodeRender {
		t.Errorf("error code: got %q, want %q", res.ErrorCode, CodeRender)
	}
	if !strings.Contains(res.Error, "syntax error") {
		t.Errorf("error detail should name the render failure, got %q", res.Error)
	}
}

func TestRunCleansModelDotOutput(t *testing.T) {
	fenced := "```dot\n" + mockDot + "\n```"
	m := &provider.Mock{Responses: []string{"VALID", "summary", fenced}}
	r := &fakeRenderer{}
	p := newPipeline(m, r)

	res := p.Run(context.Background(), validRequest())
	if !res.Success {
		t.Fatalf("run failed: %q", res.Error)
	}

	if len(r.srcs) != 1 {
		t.Fatalf("render sources: got %d", len(r.srcs))
	}
	if strings.Contains(r.srcs[0], "```") {
		t.Errorf("markdown fence reached the renderer: %q", r.srcs[0])
	}
	if !strings.HasPrefix(r.srcs[0], "digraph") {
		t.Errorf("renderer input should start with digraph, got %q", r.srcs[0])
	}
}

func TestRunUnsupportedProvider(t *testing.T) {
	p := &Pipeline{
		NewClient:     provider.New,
		Renderer:      &fakeRenderer{},
		MinInputChars: 50,
	}

	req := validRequest()
	req.Provider = "mistral"
	req.APIKey = "any-key"
	res := p.Run(context.Background(), req)

	if res.Success {
		t.Error("success: got true, want false")
	}
	if !strings.Contains(res.Message, "Unsupported provider") {
		t.Errorf("message: got %q", res.Message)
	}
}

func TestRunEmptyModelResponse(t *testing.T) {
	m := &provider.Mock{Responses: []string{""}}
	p := newPipeline(m, &fakeRenderer{})

	res := p.Run(context.Background(), validRequest())

	if res.Success || res.ErrorCode != CodeUpstream {
		t.Errorf("got success=%v code=%q, want upstream failure on empty response", res.Success, res.ErrorCode)
	}
}

func TestRunConcurrentRequestsDistinctPaths(t *testing.T) {
	r := &fakeRenderer{}
	p := &Pipeline{
		NewClient: func(providerID, model, apiKey string) (provider.Client, error) {
			return &provider.Mock{Responses: []string{"VALID", "summary", mockDot}}, nil
		},
		Renderer:      r,
		MinInputChars: 50,
	}

	const n = 4
	var wg sync.WaitGroup
	results := make([]Result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Run(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i, res := range results {
		if !res.Success {
			t.Fatalf("run %d failed: %q", i, res.Error)
		}
		if seen[res.GraphPath] {
			t.Errorf("duplicate graph path %q", res.GraphPath)
		}
		seen[res.GraphPath] = true
	}
}

package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/y0sif/lexi-graph/internal/dot"
)

const quickChartDefaultBaseURL = "https://quickchart.io"

// QuickChart renders via the hosted Graphviz endpoint. The returned PNG
// is materialized into the output directory so all images are served the
// same way regardless of renderer.
type QuickChart struct {
	BaseURL   string
	OutputDir string
	Client    *http.Client
}

type quickChartRequest struct {
	Graph  string `json:"graph"`
	Layout string `json:"layout"`
	Format string `json:"format"`
}

func (q *QuickChart) baseURL() string {
	if q.BaseURL == "" {
		return quickChartDefaultBaseURL
	}
	return strings.TrimRight(q.BaseURL, "/")
}

func (q *QuickChart) Name() string { return "QuickChart" }

func (q *QuickChart) Render(ctx context.Context, dotSource string) (string, error) {
	if err := dot.Validate(dotSource); err != nil {
		return "", &RenderError{Renderer: "quickchart", Detail: err.Error()}
	}

	// The hosted renderer supports a narrower color palette than dot.
	src := dot.MapUnsupportedColors(dotSource)

	body, err := json.Marshal(quickChartRequest{Graph: src, Layout: "dot", Format: "png"})
	if err != nil {
		return "", fmt.Errorf("quickchart: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, q.baseURL()+"/graphviz", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("quickchart: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := q.Client.Do(req)
	if err != nil {
		return "", &RenderError{Renderer: "quickchart", Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &RenderError{
			Renderer: "quickchart",
			Detail:   fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	png, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("quickchart: read response: %w", err)
	}
	if len(png) == 0 {
		return "", &RenderError{Renderer: "quickchart", Detail: "empty image response"}
	}

	if err := os.MkdirAll(q.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("quickchart: create output dir: %w", err)
	}

	filename := uniqueFilename()
	if err := os.WriteFile(filepath.Join(q.OutputDir, filename), png, 0o644); err != nil {
		return "", fmt.Errorf("quickchart: write image: %w", err)
	}

	return filename, nil
}

func (q *QuickChart) Available() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, q.baseURL()+"/graphviz", nil)
	if err != nil {
		return false
	}
	resp, err := q.Client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

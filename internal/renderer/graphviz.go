package renderer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/y0sif/lexi-graph/internal/dot"
)

// Graphviz renders via the local `dot` binary.
type Graphviz struct {
	Binary    string // defaults to "dot"
	OutputDir string
}

func (g *Graphviz) binary() string {
	if g.Binary == "" {
		return "dot"
	}
	return g.Binary
}

func (g *Graphviz) Name() string {
	return fmt.Sprintf("Graphviz (%s)", g.binary())
}

func (g *Graphviz) Render(ctx context.Context, dotSource string) (string, error) {
	if err := dot.Validate(dotSource); err != nil {
		return "", &RenderError{Renderer: "graphviz", Detail: err.Error()}
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("graphviz: create output dir: %w", err)
	}

	filename := uniqueFilename()
	outPath := filepath.Join(g.OutputDir, filename)

	cmd := exec.CommandContext(ctx, g.binary(), "-Tpng", "-o", outPath)
	cmd.Stdin = strings.NewReader(dotSource)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// dot may leave a partial file behind on failure.
		os.Remove(outPath)
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", &RenderError{Renderer: "graphviz", Detail: detail}
	}

	info, err := os.Stat(outPath)
	if err != nil || info.Size() == 0 {
		os.Remove(outPath)
		return "", &RenderError{Renderer: "graphviz", Detail: "renderer produced no output"}
	}

	return filename, nil
}

func (g *Graphviz) Available() bool {
	_, err := exec.LookPath(g.binary())
	return err == nil
}

// Package renderer turns graph-description documents into PNG files in
// the shared output directory. Two implementations exist: a local
// Graphviz subprocess and the hosted QuickChart API.
package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Renderer converts a DOT document into an image file and returns the
// generated file name (not the full path).
type Renderer interface {
	Name() string
	Render(ctx context.Context, dotSource string) (string, error)
	Available() bool
}

// RenderError reports a malformed document or a failed render run. The
// renderer never attempts to repair the model's output.
type RenderError struct {
	Renderer string
	Detail   string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render (%s): %s", e.Renderer, e.Detail)
}

// uniqueFilename returns a collision-free image file name. The random
// suffix keeps concurrent requests from racing on the same path.
func uniqueFilename() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("graph_%d_%s.png", time.Now().Unix(), suffix)
}

// CleanupOld removes rendered images older than maxAge from dir. Errors
// on individual files are logged and skipped; a missing directory is not
// an error.
func CleanupOld(dir string, maxAge time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("cleanup: read output dir", "dir", dir, "error", err)
		}
		return
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				slog.Warn("cleanup: remove", "file", path, "error", err)
				continue
			}
			slog.Info("cleanup: removed old image", "file", entry.Name())
		}
	}
}

package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/y0sif/lexi-graph/internal/pipeline"
)

// resolveImage validates the requested reference and returns the path on
// disk. Only bare .png filenames produced by the renderer are accepted.
func resolveImage(outputDir, ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || strings.Contains(ref, "..") {
		return "", fmt.Errorf("invalid image reference")
	}
	if !strings.HasSuffix(ref, ".png") {
		return "", fmt.Errorf("invalid image reference")
	}
	path := filepath.Join(outputDir, ref)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("image not found")
	}
	return path, nil
}

// Image serves a rendered graph inline for display.
func Image(outputDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := r.PathValue("ref")
		path, err := resolveImage(outputDir, ref)
		if err != nil {
			writeErrorCode(w, http.StatusNotFound, "Image file not found", pipeline.CodeNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		http.ServeFile(w, r, path)
	}
}

// Download serves a rendered graph as an attachment.
func Download(outputDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := r.PathValue("ref")
		path, err := resolveImage(outputDir, ref)
		if err != nil {
			writeErrorCode(w, http.StatusNotFound, "File not found", pipeline.CodeNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", ref))
		http.ServeFile(w, r, path)
	}
}

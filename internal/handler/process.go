package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/y0sif/lexi-graph/internal/catalog"
	"github.com/y0sif/lexi-graph/internal/metrics"
	"github.com/y0sif/lexi-graph/internal/pipeline"
)

const maxTextLength = 50000

type processRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
}

// Process runs the full text-to-graph pipeline for one submission.
// Pipeline-level failures come back as 200 with success=false so the
// frontend always gets a Result body; transport problems use 4xx.
func Process(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		// Rune count, not byte count: non-Latin lectures carry 2-3 bytes
		// per character and must not hit the cap early.
		if utf8.RuneCountInString(req.Text) > maxTextLength {
			writeError(w, http.StatusBadRequest, "text too long")
			return
		}
		if req.Provider == "" {
			writeError(w, http.StatusBadRequest, "provider is required")
			return
		}
		if !catalog.Exists(req.Provider) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown provider: %s", req.Provider))
			return
		}
		if req.Model == "" {
			writeError(w, http.StatusBadRequest, "model is required")
			return
		}
		if req.APIKey == "" {
			writeError(w, http.StatusBadRequest, "api_key is required")
			return
		}

		metrics.InputChars.Observe(float64(utf8.RuneCountInString(req.Text)))

		result := p.Run(r.Context(), pipeline.Request{
			Text:     req.Text,
			Provider: req.Provider,
			Model:    req.Model,
			APIKey:   req.APIKey,
		})

		writeJSON(w, http.StatusOK, result)
	}
}

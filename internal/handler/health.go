package handler

import (
	"net/http"

	"github.com/y0sif/lexi-graph/internal/catalog"
	"github.com/y0sif/lexi-graph/internal/renderer"
)

type rendererStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type healthResponse struct {
	Status    string         `json:"status"`
	Renderer  rendererStatus `json:"renderer"`
	Providers int            `json:"providers"`
}

// Health reports service liveness and whether the renderer is usable.
// Provider availability is not probed: credentials arrive per request.
func Health(r renderer.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status: "ok",
			Renderer: rendererStatus{
				Name:      r.Name(),
				Available: r.Available(),
			},
			Providers: len(catalog.Providers()),
		})
	}
}

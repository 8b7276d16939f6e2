package handler

import (
	"fmt"
	"net/http"

	"github.com/y0sif/lexi-graph/internal/catalog"
)

type providersResponse struct {
	Providers []catalog.ProviderInfo `json:"providers"`
}

type modelsResponse struct {
	Models []catalog.ModelInfo `json:"models"`
}

// Providers lists the supported LLM providers.
func Providers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, providersResponse{Providers: catalog.Providers()})
	}
}

// Models lists the models for the provider named in the path.
func Models() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerID := r.PathValue("provider")
		models, ok := catalog.Models(providerID)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Provider %s not found", providerID))
			return
		}
		writeJSON(w, http.StatusOK, modelsResponse{Models: models})
	}
}

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/y0sif/lexi-graph/internal/config"
	"github.com/y0sif/lexi-graph/internal/handler"
	"github.com/y0sif/lexi-graph/internal/middleware"
	"github.com/y0sif/lexi-graph/internal/pipeline"
	"github.com/y0sif/lexi-graph/internal/renderer"
)

// SetupMux wires handlers with the full middleware chain.
func SetupMux(p *pipeline.Pipeline, rnd renderer.Renderer, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handler.Health(rnd))
	mux.HandleFunc("GET /api/providers", handler.Providers())
	mux.HandleFunc("GET /api/models/{provider}", handler.Models())
	mux.HandleFunc("POST /api/process", handler.Process(p))
	mux.HandleFunc("GET /api/image/{ref}", handler.Image(cfg.OutputDir))
	mux.HandleFunc("GET /api/download/{ref}", handler.Download(cfg.OutputDir))
	mux.Handle("/metrics", promhttp.Handler())

	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow())
	return middleware.Chain(mux, rl, cfg.APIKey)
}

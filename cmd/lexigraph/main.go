package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/y0sif/lexi-graph/internal/config"
	"github.com/y0sif/lexi-graph/internal/pipeline"
	"github.com/y0sif/lexi-graph/internal/provider"
	"github.com/y0sif/lexi-graph/internal/renderer"
	"github.com/y0sif/lexi-graph/internal/server"
)

const mockDot = `digraph G {
	rankdir=LR;
	node [shape=box, style=filled, fillcolor=lightblue];
	topic -> concept_a;
	topic -> concept_b;
}`

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	port := flag.Int("port", 0, "override listen port")
	useMock := flag.Bool("mock", false, "use a mock model client instead of real providers")
	flag.Parse()

	// .env is optional; real deployments use environment variables.
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	rnd := buildRenderer(cfg)
	if !rnd.Available() {
		slog.Warn("renderer not available, renders will fail", "renderer", rnd.Name())
	}

	p := &pipeline.Pipeline{
		NewClient:     provider.New,
		Renderer:      rnd,
		MinInputChars: cfg.MinInputChars,
	}
	if *useMock {
		p.NewClient = mockClientFactory()
		slog.Info("mode: mock model client enabled")
	}

	handler := server.SetupMux(p, rnd, &cfg)

	if cfg.APIKey != "" {
		slog.Info("auth: API key required (X-API-Key header)")
	} else {
		slog.Info("auth: disabled (no api_key configured)")
	}

	stopJanitor := startJanitor(cfg)
	defer stopJanitor()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("lexigraph api listening", "addr", addr, "renderer", rnd.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func buildRenderer(cfg config.Config) renderer.Renderer {
	switch cfg.Renderer {
	case "quickchart":
		return &renderer.QuickChart{
			BaseURL:   cfg.QuickChartURL,
			OutputDir: cfg.OutputDir,
			Client:    &http.Client{Timeout: 60 * time.Second},
		}
	default:
		return &renderer.Graphviz{
			Binary:    cfg.GraphvizBin,
			OutputDir: cfg.OutputDir,
		}
	}
}

// mockClientFactory returns a fresh scripted client per pipeline run so
// concurrent requests do not share response state.
func mockClientFactory() pipeline.ClientFactory {
	return func(providerID, model, apiKey string) (provider.Client, error) {
		return &provider.Mock{
			Responses: []string{
				"VALID",
				"A short hierarchical summary of the submitted lecture.",
				mockDot,
			},
			Delay: 300 * time.Millisecond,
		}, nil
	}
}

// startJanitor removes stale rendered images on an hourly tick.
func startJanitor(cfg config.Config) func() {
	if cfg.CleanupMaxAgeHrs <= 0 {
		return func() {}
	}

	renderer.CleanupOld(cfg.OutputDir, cfg.CleanupMaxAge())

	ticker := time.NewTicker(time.Hour)
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				renderer.CleanupOld(cfg.OutputDir, cfg.CleanupMaxAge())
			case <-stop:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stop)
	}
}

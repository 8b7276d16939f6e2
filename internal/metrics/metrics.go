package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lexigraph_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// StageDuration tracks time spent in each pipeline stage.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lexigraph_stage_duration_seconds",
		Help:    "Time spent per pipeline stage.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"stage"})

	// InputChars tracks the distribution of submitted lecture lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lexigraph_input_chars",
		Help:    "Number of characters in submitted lecture text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
	})

	// RendersTotal counts render attempts by renderer and outcome.
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lexigraph_renders_total",
		Help: "Render attempts by renderer and outcome.",
	}, []string{"renderer", "outcome"})
)

package middleware

import (
	"net/http"
	"time"
)

// Requests run three sequential model calls plus a render, so the outer
// timeout has to cover the slowest provider several times over.
const requestTimeout = 10 * time.Minute

// maxBodyBytes must stay above the largest accepted lecture text plus
// JSON framing.
const maxBodyBytes = 128 * 1024

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → RateLimit → APIKey → MaxBytes → Timeout → mux
func Chain(handler http.Handler, rl *RateLimiter, apiKey string) http.Handler {
	h := handler
	h = http.TimeoutHandler(h, requestTimeout, `{"error":"request timeout"}`)
	h = MaxBytes(maxBodyBytes)(h)
	h = APIKey(apiKey)(h)
	h = RateLimit(rl)(h)
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}

package provider

import (
	"context"
	"sync"
	"time"
)

// Mock is a scripted client for tests and -mock mode. Each Complete call
// consumes the next entry in Responses; when the script runs out, the
// last entry repeats. Err, when set, is returned instead.
type Mock struct {
	Responses []string
	Err       error
	Delay     time.Duration

	mu    sync.Mutex
	calls int
	// Prompts records every prompt received, for assertions.
	Prompts []string
}

func (m *Mock) Name() string { return "Mock" }

func (m *Mock) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	i := m.calls
	m.calls++

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return m.Responses[i], nil
}

// Calls returns how many times Complete has been invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

package generation

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned per call when the provider credential is not configured.
var ErrMissingAPIKey = errors.New("generation api key not configured")

// Request is a single chat-style completion: one system instruction, one user turn.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature *float64
	MaxTokens   int
}

// Generator produces text for a Request. An empty string with a nil error means the
// provider answered without content.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

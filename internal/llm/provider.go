package llm

import (
	"context"
	"time"
)

// Provider answers a single stateless chat turn.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// ChatRequest is one system prompt plus one user message. No history is kept
// between requests.
type ChatRequest struct {
	System string
	User   string
}

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 60 * time.Second

// Package llm provides clients for local and hosted chat model servers.
package llm

import (
	"context"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for chat model providers.
type Client interface {
	// Chat sends messages to the model and returns the response text.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Probe checks whether the backing server is reachable. It is called
	// with a short timeout before the first chat so the UI can greet the
	// user with an accurate status line.
	Probe(ctx context.Context) error
}

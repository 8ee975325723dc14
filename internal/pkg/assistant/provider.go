// Package assistant wraps the external completion service the relay calls
// for synthetic replies.
package assistant

import (
	"context"
	"io"
	"time"
)

// maxErrorBodySize caps how much of an error response body gets read, so a
// malformed upstream error cannot balloon memory.
const maxErrorBodySize = 1 << 20

// Provider is the completion-service contract: one ordered prompt in, one
// reply out. Implementations must be safe for concurrent independent calls.
type Provider interface {
	// Chat sends the prompt and returns the generated reply. It never
	// retries; any upstream failure, timeout or malformed response comes
	// back as an error.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Name returns the provider identifier.
	Name() string
}

// ChatRequest is a single completion call.
type ChatRequest struct {
	// Model overrides the configured default when non-empty.
	Model string

	// SystemPrompt sets the assistant's standing instruction.
	SystemPrompt string

	// Messages is the ordered turn sequence derived from the transcript.
	Messages []Message
}

// Message is one prompt turn.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatResponse carries the single generated reply.
type ChatResponse struct {
	Content string
	Model   string
}

// Config configures an HTTP completion provider.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-4o"
	}
	if c.Timeout == 0 {
		c.Timeout = time.Minute
	}
	return c
}

func readLimitedBody(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, maxErrorBodySize))
}

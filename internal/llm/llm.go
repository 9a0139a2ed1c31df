package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for code review and rewrite.
type Client interface {
	// ReviewCode returns feedback statements grouped into four severity
	// buckets as a JSON object {Critical: [...], High: [...], Medium: [...], Low: [...]}.
	ReviewCode(ctx context.Context, input Input) (json.RawMessage, error)
	// RewriteCode returns an improved version of the code as free text,
	// usually wrapped in a fenced code block.
	RewriteCode(ctx context.Context, input Input) (string, error)
}

// Input captures the inputs needed for a review or rewrite call.
type Input struct {
	Language string
	Code     string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// ReviewCode returns ErrNotImplemented.
func (PlaceholderClient) ReviewCode(ctx context.Context, input Input) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}

// RewriteCode returns ErrNotImplemented.
func (PlaceholderClient) RewriteCode(ctx context.Context, input Input) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}

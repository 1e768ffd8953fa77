package genai

import "context"

// Client produces a text completion for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

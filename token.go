package sitechat

import "context"

// TokenCounter counts tokens in text for a specific model.
// Used to report how much of the model's context the grounding occupies.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

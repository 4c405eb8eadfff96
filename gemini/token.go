package gemini

import (
	"context"

	"github.com/fwojciec/sitechat"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ sitechat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally with the tokenizer of a Gemini model.
// No API calls are made.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model. Models without a local
// tokenizer return an EINVALID error.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "no local tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose tokenizer is used.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the tokens text occupies as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, sitechat.Errorf(sitechat.EINTERNAL, "count tokens: %v", err)
	}
	return int(result.TotalTokens), nil
}

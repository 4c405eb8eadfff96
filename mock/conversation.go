package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Conversation = (*Conversation)(nil)

// Conversation is a mock implementation of sitechat.Conversation.
type Conversation struct {
	AnswerFn func(ctx context.Context, question string) string
	ClearFn  func()
}

func (c *Conversation) Answer(ctx context.Context, question string) string {
	return c.AnswerFn(ctx, question)
}

func (c *Conversation) Clear() {
	c.ClearFn()
}

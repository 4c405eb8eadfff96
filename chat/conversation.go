// Package chat manages a question-answering conversation grounded in the
// content of a single page, and the interactive session that drives it.
package chat

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/sitechat"
)

// Default completion settings.
const (
	DefaultTemperature     float32 = 0.7
	DefaultMaxOutputTokens int32   = 500

	// DefaultHistoryWindow is the number of history entries (five
	// question/answer exchanges) included in each prompt.
	DefaultHistoryWindow = 10
)

// Ensure Conversation implements sitechat.Conversation at compile time.
var _ sitechat.Conversation = (*Conversation)(nil)

// Conversation keeps the grounding context and the rolling history of one
// session. It is not safe for concurrent use; each session owns its own.
type Conversation struct {
	grounding string
	completer sitechat.Completer
	opts      sitechat.CompletionOptions
	window    int
	logger    *slog.Logger

	// history is append-only between clears. The window bounds reads only.
	history []sitechat.Message
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithTemperature sets the sampling temperature. Defaults to 0.7.
func WithTemperature(t float32) Option {
	return func(c *Conversation) {
		c.opts.Temperature = t
	}
}

// WithMaxOutputTokens bounds the length of each answer. Defaults to 500.
func WithMaxOutputTokens(n int32) Option {
	return func(c *Conversation) {
		c.opts.MaxOutputTokens = n
	}
}

// WithHistoryWindow sets how many history entries each prompt includes.
// The value is clamped to [0, DefaultHistoryWindow] and odd values are
// rounded down so the window holds whole exchanges.
func WithHistoryWindow(n int) Option {
	return func(c *Conversation) {
		n = max(0, min(n, DefaultHistoryWindow))
		c.window = n - n%2
	}
}

// WithLogger sets the logger. Defaults to discarding all output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conversation) {
		c.logger = logger
	}
}

// NewConversation creates a Conversation grounded in the given context.
func NewConversation(grounding string, completer sitechat.Completer, opts ...Option) *Conversation {
	c := &Conversation{
		grounding: grounding,
		completer: completer,
		opts: sitechat.CompletionOptions{
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
		window: DefaultHistoryWindow,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Grounding returns the context the conversation is grounded in.
func (c *Conversation) Grounding() string {
	return c.grounding
}

// History returns a copy of every exchange since the last clear.
func (c *Conversation) History() []sitechat.Message {
	history := make([]sitechat.Message, len(c.history))
	copy(history, c.history)
	return history
}

// Directive returns the system instruction for this conversation.
func (c *Conversation) Directive() string {
	return BuildDirective(c.grounding)
}

// BuildDirective returns the system instruction that embeds the grounding
// context and restricts the model to it.
func BuildDirective(grounding string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful chatbot assistant that answers questions based on the content of a specific website.\n\n")
	sb.WriteString("WEBSITE CONTENT:\n")
	sb.WriteString(grounding)
	sb.WriteString("\n\nINSTRUCTIONS:\n")
	sb.WriteString("- Answer questions using ONLY the information provided in the website content above\n")
	sb.WriteString("- If the answer is not found in the website content, respond with: \"" + sitechat.FallbackAnswer + "\"\n")
	sb.WriteString("- Be helpful, clear, and concise in your responses\n")
	sb.WriteString("- Do not use external knowledge or information not present in the website content\n")
	sb.WriteString("- If relevant, reference specific sections or headings from the website\n")
	sb.WriteString("- Maintain a friendly and professional tone")
	return sb.String()
}

// Prompt assembles the messages sent for question: the directive, the most
// recent history entries oldest first, then the question itself.
func (c *Conversation) Prompt(question string) []sitechat.Message {
	recent := c.history
	if len(recent) > c.window {
		recent = recent[len(recent)-c.window:]
	}

	messages := make([]sitechat.Message, 0, len(recent)+2)
	messages = append(messages, sitechat.Message{Role: sitechat.RoleSystem, Content: c.Directive()})
	messages = append(messages, recent...)
	messages = append(messages, sitechat.Message{Role: sitechat.RoleUser, Content: question})
	return messages
}

// Answer asks the model about the page. On success the exchange is added to
// history and the trimmed answer returned. On failure history is unchanged
// and the returned text starts with sitechat.ErrorAnswerPrefix.
//
// With an empty grounding context the model is not called and
// sitechat.FallbackAnswer is returned.
func (c *Conversation) Answer(ctx context.Context, question string) string {
	if c.Refusing() {
		c.logger.Warn("answer refused", "reason", "empty grounding context")
		return sitechat.FallbackAnswer
	}

	answer, err := c.completer.Complete(ctx, c.Prompt(question), c.opts)
	if err != nil {
		c.logger.Error("answer failed", "history", len(c.history), "err", err)
		return sitechat.ErrorAnswerPrefix + sitechat.ErrorReason(err)
	}

	answer = strings.TrimSpace(answer)
	c.history = append(c.history,
		sitechat.Message{Role: sitechat.RoleUser, Content: question},
		sitechat.Message{Role: sitechat.RoleAssistant, Content: answer},
	)
	c.logger.Debug("answer", "history", len(c.history), "chars", len(answer))
	return answer
}

// Refusing reports whether every question gets sitechat.FallbackAnswer
// without a model call, which is the case when the grounding is empty.
func (c *Conversation) Refusing() bool {
	return strings.TrimSpace(c.grounding) == ""
}

// Clear empties the history. The grounding context is kept.
func (c *Conversation) Clear() {
	c.history = nil
	c.logger.Debug("history cleared")
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Message text is never
// logged, only sizes.
type LoggingCompleter struct {
	next   sitechat.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next sitechat.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer.
func (c *LoggingCompleter) Complete(ctx context.Context, messages []sitechat.Message, opts sitechat.CompletionOptions) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("complete",
			"messages", len(messages),
			"temperature", opts.Temperature,
			"max_tokens", opts.MaxOutputTokens,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, messages, opts)
}

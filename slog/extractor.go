package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging of which fields were found.
type LoggingExtractor struct {
	next   sitechat.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sitechat.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string) (record *sitechat.Record, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if record != nil {
			s := record.Summary()
			attrs = append(attrs,
				"title", sitechat.Found(record.Title),
				"description", sitechat.Found(record.Description),
				"main_content_len", s.MainContentLen,
				"headings", s.HeadingCount,
				"links", s.LinkCount,
				"full_text_len", s.FullTextLen,
			)
		}
		attrs = append(attrs, "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}

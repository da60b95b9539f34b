package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/twittercards"
)

// Ensure LoggingExtractor implements twittercards.Extractor.
var _ twittercards.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   twittercards.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next twittercards.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what it found.
func (e *LoggingExtractor) Extract(html string) (card *twittercards.Card, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(html)}
		if card != nil {
			attrs = append(attrs,
				"type", string(card.Type()),
				"keys", card.Len(),
				"valid", card.IsValid(),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}

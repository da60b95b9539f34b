package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/twittercards"
)

// Ensure LoggingCardService implements twittercards.CardService.
var _ twittercards.CardService = (*LoggingCardService)(nil)

// LoggingCardService wraps a CardService, logging every recorded scan.
type LoggingCardService struct {
	twittercards.CardService
	logger *slog.Logger
}

// NewLoggingCardService creates a new LoggingCardService.
func NewLoggingCardService(next twittercards.CardService, logger *slog.Logger) *LoggingCardService {
	return &LoggingCardService{CardService: next, logger: logger}
}

// CreateScan delegates to the wrapped service and logs the stored scan.
func (s *LoggingCardService) CreateScan(ctx context.Context, scan *twittercards.Scan) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save scan",
			"url", scan.URL,
			"id", scan.ID,
			"hash", scan.Hash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.CardService.CreateScan(ctx, scan)
}

// Package scan orchestrates card extraction: fetching pages, extracting
// their cards, applying strict validation, and scanning whole sites.
package scan

import (
	"context"

	"github.com/fwojciec/twittercards"
)

// Ensure Scanner implements twittercards.CardFetcher at compile time.
var _ twittercards.CardFetcher = (*Scanner)(nil)

// Scanner runs the fetch, extract and validate pipeline for single pages.
type Scanner struct {
	Fetcher   twittercards.Fetcher
	Extractor twittercards.Extractor
}

// ParseCard extracts a card from html and applies opts.
func (s *Scanner) ParseCard(html string, opts twittercards.Options) (*twittercards.Card, error) {
	card, err := s.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	if err := twittercards.Validate(card, opts); err != nil {
		return nil, err
	}
	return card, nil
}

// FetchCard fetches url and extracts its card. Any fetch failure is
// reported as EFETCH.
func (s *Scanner) FetchCard(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		if twittercards.ErrorCode(err) == twittercards.EFETCH {
			return nil, err
		}
		return nil, &fetchError{
			err:   twittercards.Errorf(twittercards.EFETCH, "fetching %s: %v", url, err),
			cause: err,
		}
	}
	return s.ParseCard(html, opts)
}

// Parse returns the card in html, or nil when there is none or strict
// validation rejects it.
func (s *Scanner) Parse(html string, opts twittercards.Options) *twittercards.Card {
	card, _ := s.ParseCard(html, opts)
	return card
}

// Fetch returns the card at url, or nil when the page cannot be fetched,
// carries no card, or fails strict validation.
func (s *Scanner) Fetch(ctx context.Context, url string, opts twittercards.Options) *twittercards.Card {
	card, err := s.FetchCard(ctx, url, opts)
	if err != nil {
		return nil
	}
	return card
}

// fetchError is an EFETCH error that keeps the transport error for errors.Is.
type fetchError struct {
	err   *twittercards.Error
	cause error
}

func (e *fetchError) Error() string {
	return e.err.Error()
}

func (e *fetchError) Unwrap() []error {
	return []error{e.err, e.cause}
}

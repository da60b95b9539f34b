package mock

import (
	"context"

	"github.com/fwojciec/twittercards"
)

var _ twittercards.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of twittercards.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ twittercards.CardFetcher = (*CardFetcher)(nil)

// CardFetcher is a mock implementation of twittercards.CardFetcher.
type CardFetcher struct {
	FetchCardFn func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error)
	ParseCardFn func(html string, opts twittercards.Options) (*twittercards.Card, error)
}

func (f *CardFetcher) FetchCard(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
	return f.FetchCardFn(ctx, url, opts)
}

func (f *CardFetcher) ParseCard(html string, opts twittercards.Options) (*twittercards.Card, error) {
	return f.ParseCardFn(html, opts)
}

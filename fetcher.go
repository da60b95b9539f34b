package twittercards

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// CardFetcher retrieves cards from pages or raw HTML.
type CardFetcher interface {
	// FetchCard fetches url and extracts its card.
	// Returns EFETCH on transport failures, ENOCARD when the page has no
	// card data, and EINVALID when strict validation fails.
	FetchCard(ctx context.Context, url string, opts Options) (*Card, error)

	// ParseCard extracts a card from raw HTML.
	ParseCard(html string, opts Options) (*Card, error)
}

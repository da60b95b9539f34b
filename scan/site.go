package scan

import (
	"context"
	"fmt"

	"github.com/fwojciec/twittercards"
	"github.com/fwojciec/twittercards/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once by a site scan.
const DefaultConcurrency = 4

// Ensure SiteScanner implements twittercards.SiteScanner at compile time.
var _ twittercards.SiteScanner = (*SiteScanner)(nil)

// SiteScanner extracts cards from every page in a site's sitemap.
type SiteScanner struct {
	Sitemaps twittercards.SitemapService
	Cards    twittercards.CardFetcher

	// Limiter, if set, is consulted with the page host before each fetch.
	Limiter twittercards.DomainLimiter

	// Scans, if set, records every result that produced a card.
	Scans twittercards.CardService

	Concurrency int
}

// ScanSite discovers the site's pages and extracts a card from each.
// Results are returned in sitemap order, one per distinct URL.
func (s *SiteScanner) ScanSite(ctx context.Context, siteURL string, filter *twittercards.URLFilter, opts twittercards.Options) ([]*twittercards.ScanResult, error) {
	urls, err := s.Sitemaps.DiscoverURLs(ctx, siteURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	urls = bloom.Unique(urls)

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*twittercards.ScanResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			if s.Limiter != nil {
				if err := s.Limiter.Wait(gctx, hostOf(u)); err != nil {
					return err
				}
			}

			card, err := s.Cards.FetchCard(gctx, u, opts)
			if cerr := gctx.Err(); cerr != nil {
				return cerr
			}
			results[i] = &twittercards.ScanResult{URL: u, Card: card, Err: err}

			if card != nil && s.Scans != nil {
				if err := s.Scans.CreateScan(gctx, &twittercards.Scan{URL: u, Card: card}); err != nil {
					return fmt.Errorf("saving scan of %s: %w", u, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package scan_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/twittercards"
	"github.com/fwojciec/twittercards/mock"
	"github.com/fwojciec/twittercards/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sitemapOf(urls ...string) *mock.SitemapService {
	return &mock.SitemapService{
		DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *twittercards.URLFilter) ([]string, error) {
			return urls, nil
		},
	}
}

func summaryCard(title string) *twittercards.Card {
	return twittercards.NewCard([]twittercards.Attribute{
		{Key: "card", Value: "summary"},
		{Key: "title", Value: title},
	})
}

func TestSiteScanner_ScanSite(t *testing.T) {
	t.Parallel()

	t.Run("returns results in sitemap order", func(t *testing.T) {
		t.Parallel()

		s := &scan.SiteScanner{
			Sitemaps: sitemapOf("https://example.com/a", "https://example.com/b", "https://example.com/c"),
			Cards: &mock.CardFetcher{
				FetchCardFn: func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
					return summaryCard(url), nil
				},
			},
			Concurrency: 3,
		}

		results, err := s.ScanSite(context.Background(), "https://example.com", nil, twittercards.Options{})

		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, u := range []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"} {
			assert.Equal(t, u, results[i].URL)
			assert.Equal(t, u, results[i].Card.Title())
			assert.NoError(t, results[i].Err)
		}
	})

	t.Run("records page failures without aborting", func(t *testing.T) {
		t.Parallel()

		s := &scan.SiteScanner{
			Sitemaps: sitemapOf("https://example.com/ok", "https://example.com/missing"),
			Cards: &mock.CardFetcher{
				FetchCardFn: func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
					if url == "https://example.com/missing" {
						return nil, twittercards.Errorf(twittercards.EFETCH, "HTTP 404 for %s", url)
					}
					return summaryCard("ok"), nil
				},
			},
		}

		results, err := s.ScanSite(context.Background(), "https://example.com", nil, twittercards.Options{})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.NotNil(t, results[0].Card)
		assert.Nil(t, results[1].Card)
		assert.Equal(t, twittercards.EFETCH, twittercards.ErrorCode(results[1].Err))
	})

	t.Run("fetches duplicate URLs once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		s := &scan.SiteScanner{
			Sitemaps: sitemapOf("https://example.com/a", "https://example.com/a#top", "https://example.com/b"),
			Cards: &mock.CardFetcher{
				FetchCardFn: func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
					calls.Add(1)
					return summaryCard(url), nil
				},
			},
		}

		results, err := s.ScanSite(context.Background(), "https://example.com", nil, twittercards.Options{})

		require.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("passes filter and options through", func(t *testing.T) {
		t.Parallel()

		filter, err := twittercards.NewURLFilter([]string{"/news/"}, nil)
		require.NoError(t, err)

		var gotFilter *twittercards.URLFilter
		var gotOpts twittercards.Options
		s := &scan.SiteScanner{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, f *twittercards.URLFilter) ([]string, error) {
					gotFilter = f
					return []string{"https://example.com/news/1"}, nil
				},
			},
			Cards: &mock.CardFetcher{
				FetchCardFn: func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
					gotOpts = opts
					return summaryCard(url), nil
				},
			},
		}

		_, err = s.ScanSite(context.Background(), "https://example.com", filter, twittercards.Options{Strict: true})

		require.NoError(t, err)
		assert.Same(t, filter, gotFilter)
		assert.True(t, gotOpts.Strict)
	})

	t.Run("waits on the limiter with the page host", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		s := &scan.SiteScanner{
			Sitemaps: sitemapOf("https://www.example.com/a"),
			Cards: &mock.CardFetcher{
				FetchCardFn: func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
					return summaryCard(url), nil
				},
			},
			Limiter: &mock.DomainLimiter{
				WaitFn: func(ctx context.Context, domain string) error {
					mu.Lock()
					defer mu.Unlock()
					domains = append(domains, domain)
					return nil
				},
			},
		}

		_, err := s.ScanSite(context.Background(), "https://www.example.com", nil, twittercards.Options{})

		require.NoError(t, err)
		assert.Equal(t, []string{"www.example.com"}, domains)
	})

	t.Run("saves scans that produced a card", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var saved []string
		s := &scan.SiteScanner{
			Sitemaps: sitemapOf("https://example.com/card", "https://example.com/none"),
			Cards: &mock.CardFetcher{
				FetchCardFn: func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
					if url == "https://example.com/none" {
						return nil, twittercards.Errorf(twittercards.ENOCARD, "no twitter card data found")
					}
					return summaryCard(url), nil
				},
			},
			Scans: &mock.CardService{
				CreateScanFn: func(ctx context.Context, s *twittercards.Scan) error {
					mu.Lock()
					defer mu.Unlock()
					saved = append(saved, s.URL)
					return nil
				},
			},
		}

		_, err := s.ScanSite(context.Background(), "https://example.com", nil, twittercards.Options{})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/card"}, saved)
	})

	t.Run("fails when saving fails", func(t *testing.T) {
		t.Parallel()

		s := &scan.SiteScanner{
			Sitemaps: sitemapOf("https://example.com/card"),
			Cards: &mock.CardFetcher{
				FetchCardFn: func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
					return summaryCard(url), nil
				},
			},
			Scans: &mock.CardService{
				CreateScanFn: func(ctx context.Context, s *twittercards.Scan) error {
					return errors.New("disk full")
				},
			},
		}

		_, err := s.ScanSite(context.Background(), "https://example.com", nil, twittercards.Options{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("fails on discovery error", func(t *testing.T) {
		t.Parallel()

		s := &scan.SiteScanner{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *twittercards.URLFilter) ([]string, error) {
					return nil, errors.New("connection refused")
				},
			},
		}

		_, err := s.ScanSite(context.Background(), "https://example.com", nil, twittercards.Options{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sitemap discovery")
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		s := &scan.SiteScanner{
			Sitemaps: sitemapOf("https://example.com/a", "https://example.com/b"),
			Cards: &mock.CardFetcher{
				FetchCardFn: func(ctx context.Context, url string, opts twittercards.Options) (*twittercards.Card, error) {
					cancel()
					return nil, ctx.Err()
				},
			},
			Concurrency: 1,
		}

		_, err := s.ScanSite(ctx, "https://example.com", nil, twittercards.Options{})

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns empty results for empty sitemap", func(t *testing.T) {
		t.Parallel()

		s := &scan.SiteScanner{Sitemaps: sitemapOf()}

		results, err := s.ScanSite(context.Background(), "https://example.com", nil, twittercards.Options{})

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

package mock

import (
	"context"

	"github.com/fwojciec/twittercards"
)

var _ twittercards.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of twittercards.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *twittercards.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *twittercards.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

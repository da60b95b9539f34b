package mock

import (
	"context"

	"github.com/fwojciec/twittercards"
)

var _ twittercards.CardService = (*CardService)(nil)

// CardService is a mock implementation of twittercards.CardService.
type CardService struct {
	CreateScanFn   func(ctx context.Context, s *twittercards.Scan) error
	FindScanByIDFn func(ctx context.Context, id string) (*twittercards.Scan, error)
	FindScansFn    func(ctx context.Context, filter twittercards.ScanFilter) ([]*twittercards.Scan, error)
	DeleteScanFn   func(ctx context.Context, id string) error
}

func (s *CardService) CreateScan(ctx context.Context, scan *twittercards.Scan) error {
	return s.CreateScanFn(ctx, scan)
}

func (s *CardService) FindScanByID(ctx context.Context, id string) (*twittercards.Scan, error) {
	return s.FindScanByIDFn(ctx, id)
}

func (s *CardService) FindScans(ctx context.Context, filter twittercards.ScanFilter) ([]*twittercards.Scan, error) {
	return s.FindScansFn(ctx, filter)
}

func (s *CardService) DeleteScan(ctx context.Context, id string) error {
	return s.DeleteScanFn(ctx, id)
}

var _ twittercards.SiteScanner = (*SiteScanner)(nil)

// SiteScanner is a mock implementation of twittercards.SiteScanner.
type SiteScanner struct {
	ScanSiteFn func(ctx context.Context, siteURL string, filter *twittercards.URLFilter, opts twittercards.Options) ([]*twittercards.ScanResult, error)
}

func (s *SiteScanner) ScanSite(ctx context.Context, siteURL string, filter *twittercards.URLFilter, opts twittercards.Options) ([]*twittercards.ScanResult, error) {
	return s.ScanSiteFn(ctx, siteURL, filter, opts)
}

var _ twittercards.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of twittercards.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ twittercards.CardStore = (*CardStore)(nil)

// CardStore is a mock implementation of twittercards.CardStore.
type CardStore struct {
	SaveFn   func(ctx context.Context, url string, card *twittercards.Card) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *CardStore) Save(ctx context.Context, url string, card *twittercards.Card) error {
	return s.SaveFn(ctx, url, card)
}

func (s *CardStore) Commit() error {
	return s.CommitFn()
}

func (s *CardStore) Abort() error {
	return s.AbortFn()
}

package twittercards

import (
	"context"
	"time"
)

// Scan is a persisted extraction result for one URL.
type Scan struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Type      CardType  `json:"type"`
	Valid     bool      `json:"valid"`
	Card      *Card     `json:"card"`
	Hash      string    `json:"hash"`
	ScannedAt time.Time `json:"scannedAt"`
}

// Validate returns an error if the scan contains invalid fields.
func (s *Scan) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "scan URL required")
	}
	if s.Card == nil || s.Card.Len() == 0 {
		return Errorf(EINVALID, "scan card required")
	}
	return nil
}

// CardService represents a service for managing scan history.
type CardService interface {
	// CreateScan records a scan. ID, Type, Valid, Hash and ScannedAt are
	// derived from the card and set on s.
	CreateScan(ctx context.Context, s *Scan) error

	// FindScanByID retrieves a scan by ID.
	// Returns ENOTFOUND if the scan does not exist.
	FindScanByID(ctx context.Context, id string) (*Scan, error)

	// FindScans retrieves scans matching the filter, newest first.
	FindScans(ctx context.Context, filter ScanFilter) ([]*Scan, error)

	// DeleteScan permanently removes a scan.
	// Returns ENOTFOUND if the scan does not exist.
	DeleteScan(ctx context.Context, id string) error
}

// ScanFilter represents a filter for FindScans.
type ScanFilter struct {
	URL   *string   `json:"url"`
	Type  *CardType `json:"type"`
	Valid *bool     `json:"valid"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ScanResult is the outcome of scanning one page of a site.
type ScanResult struct {
	URL  string
	Card *Card
	Err  error
}

// SiteScanner extracts cards from every page listed in a site's sitemap.
type SiteScanner interface {
	// ScanSite returns one result per discovered URL in sitemap order.
	// Page failures are reported in ScanResult.Err; only discovery errors
	// and cancellation fail the whole scan.
	ScanSite(ctx context.Context, siteURL string, filter *URLFilter, opts Options) ([]*ScanResult, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// CardStore writes the cards of one site scan as a batch.
// Saved cards become visible only after Commit; Abort discards them.
type CardStore interface {
	Save(ctx context.Context, url string, card *Card) error
	Commit() error
	Abort() error
}

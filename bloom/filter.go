// Package bloom provides probabilistic URL deduplication for site scans.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate keeps the chance of skipping an unseen URL
// negligible for sitemaps of a few hundred thousand entries.
const DefaultFalsePositiveRate = 1e-6

// Filter remembers URLs in a Bloom filter. URLs are canonicalized first, so
// fragments and host case do not produce distinct entries.
// Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(rawURL string) {
	f.f.AddString(canonical(rawURL))
}

// Test returns true if the URL might have been recorded.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	return f.f.TestString(canonical(rawURL))
}

// Seen records the URL and reports whether it was probably recorded before.
func (f *Filter) Seen(rawURL string) bool {
	return f.f.TestAndAddString(canonical(rawURL))
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// canonical strips the fragment and lowercases scheme and host.
// Unparseable input is used verbatim.
func canonical(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}

// Unique returns urls in order with probable duplicates removed.
func Unique(urls []string) []string {
	f := NewFilter(uint(len(urls)), DefaultFalsePositiveRate)
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if f.Seen(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

package mock

import "github.com/fwojciec/twittercards"

var _ twittercards.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of twittercards.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*twittercards.Card, error)
}

func (e *Extractor) Extract(html string) (*twittercards.Card, error) {
	return e.ExtractFn(html)
}

// Package goquery implements twittercards.Extractor on top of goquery's
// HTML document tree.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/twittercards"
)

// Ensure Extractor implements twittercards.Extractor at compile time.
var _ twittercards.Extractor = (*Extractor)(nil)

// twitterProperty matches "twitter:<key>" case-insensitively and captures <key>.
var twitterProperty = regexp.MustCompile(`(?i)^twitter:(.+)$`)

// propertyAttrs are checked in order; the first one that matches wins.
var propertyAttrs = []string{"name", "property"}

// Extractor reads Twitter Card properties from <meta> tags.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and extracts its card.
func (e *Extractor) Extract(html string) (*twittercards.Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, twittercards.Errorf(twittercards.EINVALID, "failed to parse HTML: %v", err)
	}
	return e.ExtractDocument(doc)
}

// ExtractDocument walks every <meta> element of doc in document order and
// collects twitter:* properties. The first value seen for a normalized key
// is kept. Returns ENOCARD when no property is found.
func (e *Extractor) ExtractDocument(doc *goquery.Document) (*twittercards.Card, error) {
	seen := make(map[string]bool)
	var attrs []twittercards.Attribute

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		key, ok := cardProperty(sel)
		if !ok || seen[key] {
			return
		}
		seen[key] = true

		content, _ := sel.Attr("content")
		attrs = append(attrs, twittercards.Attribute{Key: key, Value: content})
	})

	if len(attrs) == 0 {
		return nil, twittercards.Errorf(twittercards.ENOCARD, "no twitter card data found")
	}

	return twittercards.NewCard(attrs), nil
}

// Extract extracts the card from doc and applies opts.
// In strict mode a card missing mandatory fields is rejected with EINVALID.
func Extract(doc *goquery.Document, opts twittercards.Options) (*twittercards.Card, error) {
	card, err := NewExtractor().ExtractDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := twittercards.Validate(card, opts); err != nil {
		return nil, err
	}
	return card, nil
}

// cardProperty returns the normalized card key named by sel's name or
// property attribute.
func cardProperty(sel *goquery.Selection) (string, bool) {
	for _, attr := range propertyAttrs {
		value, exists := sel.Attr(attr)
		if !exists {
			continue
		}
		if m := twitterProperty.FindStringSubmatch(value); m != nil {
			return twittercards.NormalizeKey(m[1]), true
		}
	}
	return "", false
}

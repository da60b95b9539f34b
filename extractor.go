package twittercards

// Extractor extracts card data from HTML pages.
type Extractor interface {
	// Extract parses raw HTML and returns the card found in its meta tags.
	// Returns ENOCARD if the page carries no twitter:* properties.
	Extract(html string) (*Card, error)
}

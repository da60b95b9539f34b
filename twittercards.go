// Package twittercards extracts Twitter Card metadata from HTML pages.
// It scans <meta name="twitter:*"> and <meta property="twitter:*"> tags,
// normalizes them into an ordered Card, and validates cards against the
// mandatory fields of their card type.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package twittercards

// Options controls extraction behavior.
type Options struct {
	// Strict discards cards that are missing mandatory fields for their type.
	Strict bool
}

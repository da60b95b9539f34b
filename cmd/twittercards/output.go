package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/twittercards"
)

// cardReport is the JSON shape of an extracted card.
type cardReport struct {
	URL     string                `json:"url,omitempty"`
	Type    twittercards.CardType `json:"type"`
	Valid   bool                  `json:"valid"`
	Missing []string              `json:"missing,omitempty"`
	Card    *twittercards.Card    `json:"card"`
	Error   string                `json:"error,omitempty"`
}

func newCardReport(url string, card *twittercards.Card, err error) cardReport {
	r := cardReport{URL: url, Card: card}
	if card != nil {
		r.Type = card.Type()
		r.Valid = card.IsValid()
		r.Missing = card.MissingFields()
	}
	if err != nil {
		r.Error = twittercards.ErrorMessage(err)
	}
	return r
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeCard prints a card in the requested format.
func writeCard(w io.Writer, format, url string, card *twittercards.Card) error {
	if format == "json" {
		return writeJSON(w, newCardReport(url, card, nil))
	}
	fmt.Fprintf(w, "type: %s (%s)\n", card.Type(), validity(card))
	for _, a := range card.Attributes() {
		fmt.Fprintf(w, "%s: %s\n", a.Key, a.Value)
	}
	return nil
}

// validity describes whether a card carries its mandatory fields.
func validity(card *twittercards.Card) string {
	if card.IsValid() {
		return "valid"
	}
	if missing := card.MissingFields(); len(missing) > 0 {
		return "invalid, missing " + strings.Join(missing, ", ")
	}
	return "invalid, unknown card type"
}

// writeScan prints a saved scan in the requested format.
func writeScan(w io.Writer, format string, s *twittercards.Scan) error {
	if format == "json" {
		return writeJSON(w, s)
	}
	fmt.Fprintf(w, "id: %s\n", s.ID)
	fmt.Fprintf(w, "url: %s\n", s.URL)
	fmt.Fprintf(w, "scanned: %s\n", s.ScannedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "hash: %s\n", s.Hash)
	return writeCard(w, "text", s.URL, s.Card)
}

package main

import (
	"fmt"

	"github.com/fwojciec/twittercards"
)

// Run executes the site command.
func (c *SiteCmd) Run(deps *Dependencies) error {
	filter, err := twittercards.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
		return err
	}

	results, err := deps.Sites.ScanSite(deps.Ctx, c.URL, filter, twittercards.Options{Strict: c.Strict})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
		return err
	}

	if deps.Store != nil {
		if err := export(deps, results); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
			return err
		}
	}

	if c.Format == "json" {
		reports := make([]cardReport, 0, len(results))
		for _, r := range results {
			reports = append(reports, newCardReport(r.URL, r.Card, r.Err))
		}
		return writeJSON(deps.Stdout, reports)
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found in sitemap.")
		return nil
	}

	var cards, valid int
	for _, r := range results {
		if r.Card == nil {
			fmt.Fprintf(deps.Stdout, "%s  -  %s\n", r.URL, twittercards.ErrorMessage(r.Err))
			continue
		}
		cards++
		if r.Card.IsValid() {
			valid++
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.URL, r.Card.Type(), validity(r.Card))
	}

	fmt.Fprintf(deps.Stdout, "\nScanned %d pages: %d with cards (%d valid), %d without\n",
		len(results), cards, valid, len(results)-cards)
	return nil
}

// export saves every card in results to deps.Store as one batch.
func export(deps *Dependencies, results []*twittercards.ScanResult) error {
	for _, r := range results {
		if r.Card == nil {
			continue
		}
		if err := deps.Store.Save(deps.Ctx, r.URL, r.Card); err != nil {
			_ = deps.Store.Abort()
			return fmt.Errorf("exporting %s: %w", r.URL, err)
		}
	}
	return deps.Store.Commit()
}

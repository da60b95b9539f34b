package main

import (
	"fmt"

	"github.com/fwojciec/twittercards"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	card, err := deps.Cards.FetchCard(deps.Ctx, c.URL, twittercards.Options{Strict: c.Strict})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
		return err
	}

	if c.Save {
		scan := &twittercards.Scan{URL: c.URL, Card: card}
		if err := deps.Scans.CreateScan(deps.Ctx, scan); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
			return err
		}
	}

	return writeCard(deps.Stdout, c.Format, c.URL, card)
}

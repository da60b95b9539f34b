package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/twittercards"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := twittercards.ScanFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.Type != "" {
		t := twittercards.CardType(c.Type)
		if !t.Known() {
			err := twittercards.Errorf(twittercards.EINVALID, "unknown card type %q", c.Type)
			fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
			return err
		}
		filter.Type = &t
	}
	if c.Invalid {
		valid := false
		filter.Valid = &valid
	}

	scans, err := deps.Scans.FindScans(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
		return err
	}

	if len(scans) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans found. Use 'twittercards fetch --save' to record one.")
		return nil
	}

	for _, s := range scans {
		state := "valid"
		if !s.Valid {
			state = "invalid"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			s.ID, s.ScannedAt.Format(time.RFC3339), s.Type, state, s.URL)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	scan, err := deps.Scans.FindScanByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
		return err
	}
	return writeScan(deps.Stdout, c.Format, scan)
}

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	if err := deps.Scans.DeleteScan(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted scan %s\n", c.ID)
	return nil
}

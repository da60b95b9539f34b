package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/twittercards"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	html, err := c.read(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	card, err := deps.Cards.ParseCard(html, twittercards.Options{Strict: c.Strict})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", twittercards.ErrorMessage(err))
		return err
	}

	return writeCard(deps.Stdout, c.Format, c.File, card)
}

func (c *ParseCmd) read(stdin io.Reader) (string, error) {
	if c.File == "" || c.File == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", c.File, err)
	}
	return string(data), nil
}

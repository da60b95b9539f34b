package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/twittercards"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Logger *slog.Logger
	Cards  twittercards.CardFetcher
	Sites  twittercards.SiteScanner
	Scans  twittercards.CardService
	Store  twittercards.CardStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `name:"db" env:"TWITTERCARDS_DB" default:"${db_path}" help:"Scan history database path"`
	Timeout time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Verbose bool          `short:"v" help:"Log fetches and extractions to stderr"`

	Fetch   FetchCmd   `cmd:"" help:"Fetch a page and print its card"`
	Parse   ParseCmd   `cmd:"" help:"Parse a card from an HTML file or stdin"`
	Site    SiteCmd    `cmd:"" help:"Scan every page in a site's sitemap"`
	History HistoryCmd `cmd:"" help:"List saved scans"`
	Show    ShowCmd    `cmd:"" help:"Show a saved scan"`
	Forget  ForgetCmd  `cmd:"" help:"Delete a saved scan"`
}

// needsDB reports whether cmd reads or writes scan history.
func (c *CLI) needsDB(cmd string) bool {
	switch cmd {
	case "history", "show", "forget":
		return true
	case "fetch":
		return c.Fetch.Save
	case "site":
		return c.Site.Save
	}
	return false
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Strict bool   `short:"s" help:"Reject cards missing mandatory fields"`
	Render bool   `short:"r" help:"Render the page in a headless browser first"`
	Save   bool   `help:"Record the scan in history"`
	Format string `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File   string `arg:"" optional:"" help:"HTML file (default: stdin)"`
	Strict bool   `short:"s" help:"Reject cards missing mandatory fields"`
	Format string `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// SiteCmd is the "site" subcommand.
type SiteCmd struct {
	URL         string   `arg:"" help:"Site URL; a path limits the scan to pages under it"`
	Strict      bool     `short:"s" help:"Reject cards missing mandatory fields"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"2" help:"Requests per second per domain (0 disables limiting)"`
	Filter      []string `short:"F" name:"filter" help:"Include URLs matching regex (repeatable)"`
	Exclude     []string `short:"x" help:"Exclude URLs matching regex (repeatable)"`
	Save        bool     `help:"Record every scan with a card in history"`
	Out         string   `type:"path" help:"Export cards as JSON files into this directory"`
	Format      string   `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL     string `help:"Only scans of this URL"`
	Type    string `help:"Only scans of this card type"`
	Invalid bool   `help:"Only scans with invalid cards"`
	Limit   int    `short:"n" default:"20" help:"Maximum number of scans"`
	Offset  int    `help:"Number of scans to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Scan ID"`
	Format string `short:"o" enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	ID string `arg:"" help:"Scan ID"`
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/twittercards"
	"github.com/fwojciec/twittercards/fs"
	"github.com/fwojciec/twittercards/goquery"
	cardshttp "github.com/fwojciec/twittercards/http"
	"github.com/fwojciec/twittercards/rod"
	"github.com/fwojciec/twittercards/scan"
	cardslog "github.com/fwojciec/twittercards/slog"
	"github.com/fwojciec/twittercards/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default database path, overridden by --db. Set before calling Run().
	DBPath string

	// Input for "parse" when no file is given.
	Stdin io.Reader

	// SQLite database, opened only by commands that touch scan history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("twittercards"),
		kong.Description("Extract and validate Twitter Card metadata from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"db_path": m.DBPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'twittercards --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Open database only for commands that read or write history
	if cli.needsDB(cmd) {
		if err := m.openDB(cli.DB); err != nil {
			fmt.Fprintf(stderr, "Hint: Set TWITTERCARDS_DB or --db to use a different database path\n")
			return err
		}
		defer m.Close()
		deps.Scans = cardslog.NewLoggingCardService(sqlite.NewCardService(m.DB), logger)
	}

	// Wire the fetch pipeline for commands that extract cards
	if cmd == "fetch" || cmd == "parse" || cmd == "site" {
		var fetcher twittercards.Fetcher
		if cmd == "fetch" && cli.Fetch.Render {
			rf, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rf
		} else {
			fetcher = cardshttp.NewFetcher(cardshttp.WithTimeout(cli.Timeout))
		}
		fetcher = cardslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		deps.Cards = &scan.Scanner{
			Fetcher:   fetcher,
			Extractor: cardslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
		}
	}

	if cmd == "site" {
		sites := &scan.SiteScanner{
			Sitemaps:    cardslog.NewLoggingSitemapService(cardshttp.NewSitemapService(nil), logger),
			Cards:       deps.Cards,
			Limiter:     scan.NewDomainLimiter(cli.Site.RPS),
			Concurrency: cli.Site.Concurrency,
		}
		if cli.Site.Save {
			sites.Scans = deps.Scans
		}
		deps.Sites = sites

		if cli.Site.Out != "" {
			deps.Store = fs.NewFileStore(filepath.Dir(cli.Site.Out), filepath.Base(cli.Site.Out))
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "twittercards.db"
	}
	return filepath.Join(home, ".twittercards", "twittercards.db")
}

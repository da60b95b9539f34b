// Package fs provides file-based export of scanned cards.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/twittercards"
)

// Ensure FileStore implements twittercards.CardStore at compile time.
var _ twittercards.CardStore = (*FileStore)(nil)

// FileStore implements twittercards.CardStore with atomic update semantics.
// Cards are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// cardFile is the JSON document written for each card.
type cardFile struct {
	URL     string                `json:"url"`
	Type    twittercards.CardType `json:"type"`
	Valid   bool                  `json:"valid"`
	Missing []string              `json:"missing,omitempty"`
	Card    *twittercards.Card    `json:"card"`
}

// Save writes the card for pageURL under the temp directory, mirroring the
// URL path.
func (s *FileStore) Save(ctx context.Context, pageURL string, card *twittercards.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if card == nil {
		return twittercards.Errorf(twittercards.EINVALID, "card required for %s", pageURL)
	}

	relPath, err := URLToPath(pageURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cardFile{
		URL:     pageURL,
		Type:    card.Type(),
		Valid:   card.IsValid(),
		Missing: card.MissingFields(),
		Card:    card,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, append(data, '\n'), 0644)
}

// Commit replaces the output directory with everything saved so far.
func (s *FileStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Nothing saved: leave an empty output directory
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		return os.MkdirAll(s.finalDir(), 0755)
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the last Commit.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/news/tech → news/tech.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", twittercards.Errorf(twittercards.EINVALID, "invalid URL %q", rawURL)
	}

	path := u.Path
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return "", twittercards.Errorf(twittercards.EINVALID, "path traversal in %s", rawURL)
		}
	}

	// Handle root or trailing slash → index.json
	if path == "" || path == "/" {
		return "index.json", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.json", nil
	}

	return path + ".json", nil
}

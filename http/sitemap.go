package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/twittercards"
)

// DefaultMaxSitemaps bounds how many sitemap documents one discovery reads.
const DefaultMaxSitemaps = 500

// Ensure SitemapService implements twittercards.SitemapService.
var _ twittercards.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from website sitemaps via HTTP.
type SitemapService struct {
	client      *http.Client
	maxSitemaps int
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, maxSitemaps: DefaultMaxSitemaps}
}

// DiscoverURLs finds all page URLs listed in a site's sitemaps, in the
// order they appear, without duplicates. Returns an empty slice (not nil)
// if no sitemaps are found.
//
// When baseURL has a non-root path (e.g., https://example.com/news/),
// only URLs under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *twittercards.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, twittercards.Errorf(twittercards.EINVALID, "invalid base URL %q", baseURL)
	}

	roots, err := s.findSitemaps(ctx, base)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{
		svc:     s,
		visited: make(map[string]bool),
		listed:  make(map[string]bool),
		prefix:  pathPrefix(base.Path),
		filter:  filter,
		urls:    []string{},
	}
	for _, root := range roots {
		if err := w.visit(ctx, root); err != nil {
			return nil, err
		}
	}
	return w.urls, nil
}

// sitemapWalk holds the state of one recursive sitemap traversal.
type sitemapWalk struct {
	svc     *SitemapService
	visited map[string]bool
	listed  map[string]bool
	prefix  string
	filter  *twittercards.URLFilter
	urls    []string
}

// visit reads a sitemap document, recursing into <sitemapindex> entries.
func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] || len(w.visited) >= w.svc.maxSitemaps {
		return nil
	}
	w.visited[sitemapURL] = true

	root, err := w.svc.readSitemap(ctx, sitemapURL)
	if err != nil {
		return err
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := w.visit(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, u := range locs(root, "url") {
		w.add(u)
	}
	return nil
}

func (w *sitemapWalk) add(u string) {
	if w.listed[u] {
		return
	}
	w.listed[u] = true
	if w.prefix != "" && !hasPathPrefix(u, w.prefix) {
		return
	}
	if !w.filter.Match(u) {
		return
	}
	w.urls = append(w.urls, u)
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// pathPrefix normalizes a base path into a directory prefix.
// The root path yields "" (no filtering).
func pathPrefix(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// hasPathPrefix reports whether rawURL's path lies under prefix.
// "/news/" matches "/news/" and "/news/story" but not "/newsletter".
func hasPathPrefix(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, prefix) || u.Path+"/" == prefix
}

// findSitemaps returns sitemap URLs declared in robots.txt, falling back to
// /sitemap.xml when robots.txt declares none.
func (s *SitemapService) findSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.robotsSitemaps(ctx, robots); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		// Propagate context errors, treat other errors as "not found"
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps extracts Sitemap: directives from robots.txt.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) <= len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if u := strings.TrimSpace(line[len(directive):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// readSitemap fetches and parses a sitemap document, gunzipping .xml.gz files.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("decompressing sitemap %s: %w", sitemapURL, err)
		}
		defer gz.Close()
		r = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML %s", sitemapURL)
	}
	return root, nil
}

// get issues a GET and returns the body of a 200 response.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, twittercards.Errorf(twittercards.EFETCH, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// exists reports whether a HEAD request for targetURL returns 200 OK.
func (s *SitemapService) exists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

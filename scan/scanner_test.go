package scan_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/twittercards"
	"github.com/fwojciec/twittercards/goquery"
	cardshttp "github.com/fwojciec/twittercards/http"
	"github.com/fwojciec/twittercards/mock"
	"github.com/fwojciec/twittercards/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bbcHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Google launches Project Fi mobile phone network - BBC News</title>
	<meta name="twitter:card" content="summary_large_image">
	<meta name="twitter:site" content="@BBCNews">
	<meta name="twitter:title" content="Google launches Project Fi mobile phone network - BBC News">
	<meta name="twitter:description" content="Google is to start selling mobile phone contracts in the US.">
	<meta name="twitter:image:src" content="http://ichef.bbci.co.uk/news/1024/fi.jpg">
</head>
<body></body>
</html>`

const galleryHTML = `<html><head>
<meta name="twitter:card" content="gallery">
<meta name="twitter:site" content="@x">
<meta name="twitter:title" content="T">
<meta name="twitter:image0" content="a">
<meta name="twitter:image1" content="b">
<meta name="twitter:image2" content="c">
<meta name="twitter:image3" content="d">
</head></html>`

const incompleteGalleryHTML = `<html><head>
<meta name="twitter:card" content="gallery">
<meta name="twitter:site" content="@x">
<meta name="twitter:title" content="T">
<meta name="twitter:image0" content="a">
<meta name="twitter:image1" content="b">
<meta name="twitter:image2" content="c">
</head></html>`

func newScanner(fetcher twittercards.Fetcher) *scan.Scanner {
	return &scan.Scanner{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
	}
}

func TestScanner_Parse(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without card data", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newScanner(nil).Parse("", twittercards.Options{}))
		assert.Nil(t, newScanner(nil).Parse("<html><head><title>x</title></head></html>", twittercards.Options{}))
	})

	t.Run("returns card for any card data", func(t *testing.T) {
		t.Parallel()

		card := newScanner(nil).Parse(bbcHTML, twittercards.Options{})

		require.NotNil(t, card)
		assert.Equal(t, twittercards.CardSummaryLargeImage, card.Type())
	})

	t.Run("returns invalid card without strict mode", func(t *testing.T) {
		t.Parallel()

		card := newScanner(nil).Parse(incompleteGalleryHTML, twittercards.Options{})

		require.NotNil(t, card)
		assert.False(t, card.IsValid())
	})

	t.Run("strict mode discards invalid card", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newScanner(nil).Parse(incompleteGalleryHTML, twittercards.Options{Strict: true}))
	})

	t.Run("strict mode keeps valid gallery", func(t *testing.T) {
		t.Parallel()

		card := newScanner(nil).Parse(galleryHTML, twittercards.Options{Strict: true})

		require.NotNil(t, card)
		assert.Equal(t, twittercards.CardGallery, card.Type())
		assert.True(t, card.IsValid())
	})
}

func TestScanner_ParseCard(t *testing.T) {
	t.Parallel()

	t.Run("reports ENOCARD", func(t *testing.T) {
		t.Parallel()

		_, err := newScanner(nil).ParseCard("", twittercards.Options{Strict: true})

		assert.Equal(t, twittercards.ENOCARD, twittercards.ErrorCode(err))
	})

	t.Run("reports EINVALID with missing fields", func(t *testing.T) {
		t.Parallel()

		_, err := newScanner(nil).ParseCard(incompleteGalleryHTML, twittercards.Options{Strict: true})

		assert.Equal(t, twittercards.EINVALID, twittercards.ErrorCode(err))
		assert.Contains(t, twittercards.ErrorMessage(err), "image3")
	})

	t.Run("propagates extractor errors", func(t *testing.T) {
		t.Parallel()

		s := &scan.Scanner{Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*twittercards.Card, error) {
				return nil, twittercards.Errorf(twittercards.EINVALID, "bad html")
			},
		}}

		card, err := s.ParseCard("<html>", twittercards.Options{})

		assert.Nil(t, card)
		assert.Equal(t, "bad html", twittercards.ErrorMessage(err))
	})
}

func TestScanner_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("fetches from the specified URL", func(t *testing.T) {
		t.Parallel()

		requested := make(chan string, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested <- r.URL.Path
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(bbcHTML))
		}))
		defer srv.Close()

		card := newScanner(cardshttp.NewFetcher()).Fetch(context.Background(), srv.URL+"/news/technology-32422193", twittercards.Options{})

		require.NotNil(t, card)
		assert.Equal(t, "Google launches Project Fi mobile phone network - BBC News", card.Title())
		assert.Equal(t, "/news/technology-32422193", <-requested)
	})

	t.Run("returns nil on HTTP error status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		assert.Nil(t, newScanner(cardshttp.NewFetcher()).Fetch(context.Background(), srv.URL, twittercards.Options{}))
	})

	t.Run("returns nil on transport failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("dial tcp: lookup example.com: no such host")
			},
		}

		assert.Nil(t, newScanner(fetcher).Fetch(context.Background(), "http://example.com", twittercards.Options{}))
	})

	t.Run("strict mode applies to fetched pages", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return incompleteGalleryHTML, nil
			},
		}
		s := newScanner(fetcher)

		assert.Nil(t, s.Fetch(context.Background(), "http://example.com", twittercards.Options{Strict: true}))
		assert.NotNil(t, s.Fetch(context.Background(), "http://example.com", twittercards.Options{}))
	})
}

func TestScanner_FetchCard(t *testing.T) {
	t.Parallel()

	t.Run("wraps transport errors as EFETCH", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", context.DeadlineExceeded
			},
		}

		card, err := newScanner(fetcher).FetchCard(context.Background(), "http://example.com", twittercards.Options{})

		assert.Nil(t, card)
		assert.Equal(t, twittercards.EFETCH, twittercards.ErrorCode(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, twittercards.ErrorMessage(err), "http://example.com")
	})

	t.Run("keeps EFETCH errors from the fetcher", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", twittercards.Errorf(twittercards.EFETCH, "HTTP 503 for %s", url)
			},
		}

		_, err := newScanner(fetcher).FetchCard(context.Background(), "http://example.com", twittercards.Options{})

		assert.Equal(t, "HTTP 503 for http://example.com", twittercards.ErrorMessage(err))
	})

	t.Run("passes context and URL to fetcher", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "v")
		fetcher := &mock.Fetcher{
			FetchFn: func(got context.Context, url string) (string, error) {
				assert.Equal(t, "v", got.Value(key{}))
				assert.Equal(t, "https://example.com/a", url)
				return galleryHTML, nil
			},
		}

		card, err := newScanner(fetcher).FetchCard(ctx, "https://example.com/a", twittercards.Options{Strict: true})

		require.NoError(t, err)
		assert.True(t, card.IsGallery())
	})
}

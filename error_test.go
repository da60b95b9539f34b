package twittercards_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/twittercards"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := twittercards.Errorf(twittercards.ENOCARD, "no card data at %q", "https://example.com")

	assert.Equal(t, twittercards.ENOCARD, twittercards.ErrorCode(err))
	assert.Equal(t, "no card data at \"https://example.com\"", twittercards.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("scan: %w", twittercards.Errorf(twittercards.EFETCH, "HTTP 500"))

	assert.Equal(t, twittercards.EFETCH, twittercards.ErrorCode(err))
	assert.Equal(t, "HTTP 500", twittercards.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, twittercards.EINTERNAL, twittercards.ErrorCode(err))
	assert.Equal(t, "Internal error.", twittercards.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, twittercards.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, twittercards.ErrorMessage(nil))
}

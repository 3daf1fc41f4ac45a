package searchlite_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"searchlite"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code for application errors", func(t *testing.T) {
		t.Parallel()

		err := searchlite.Errorf(searchlite.ENOTFOUND, "document %d not found", 42)
		assert.Equal(t, searchlite.ENOTFOUND, searchlite.ErrorCode(err))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", searchlite.Errorf(searchlite.EINVALID, "bad input"))
		assert.Equal(t, searchlite.EINVALID, searchlite.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, searchlite.EINTERNAL, searchlite.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", searchlite.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message for application errors", func(t *testing.T) {
		t.Parallel()

		err := searchlite.Errorf(searchlite.EUNAVAILABLE, "HTTP 503 for %s", "https://example.com")
		assert.Equal(t, "HTTP 503 for https://example.com", searchlite.ErrorMessage(err))
	})

	t.Run("masks non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", searchlite.ErrorMessage(errors.New("boom")))
	})
}

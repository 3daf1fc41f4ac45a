package searchlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchlite"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("compiles valid patterns", func(t *testing.T) {
		t.Parallel()

		registry, err := searchlite.NewRegistry([]searchlite.Source{
			{Name: "example", URLPattern: `^https://example\.com/`},
		})
		require.NoError(t, err)
		assert.Len(t, registry.Sources(), 1)
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := searchlite.NewRegistry([]searchlite.Source{
			{Name: "broken", URLPattern: `^https://(`},
		})
		require.Error(t, err)
		assert.Equal(t, searchlite.EINVALID, searchlite.ErrorCode(err))
	})

	t.Run("rejects unnamed source", func(t *testing.T) {
		t.Parallel()

		_, err := searchlite.NewRegistry([]searchlite.Source{
			{URLPattern: `^https://example\.com/`},
		})
		require.Error(t, err)
		assert.Equal(t, searchlite.EINVALID, searchlite.ErrorCode(err))
	})
}

func TestRegistry_Accepts(t *testing.T) {
	t.Parallel()

	registry, err := searchlite.NewRegistry([]searchlite.Source{
		{Name: "news", URLPattern: `^https://news\.example\.com/`},
		{Name: "blog", URLPattern: `^https://blog\.example\.org/posts/`},
	})
	require.NoError(t, err)

	t.Run("accepts URLs matching any source", func(t *testing.T) {
		t.Parallel()

		assert.True(t, registry.Accepts("https://news.example.com/article/1"))
		assert.True(t, registry.Accepts("https://blog.example.org/posts/hello"))
	})

	t.Run("rejects URLs outside all sources", func(t *testing.T) {
		t.Parallel()

		assert.False(t, registry.Accepts("https://evil.example.net/"))
		assert.False(t, registry.Accepts("https://blog.example.org/about"))
	})
}

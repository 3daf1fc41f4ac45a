package crawl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchlite"
	"searchlite/crawl"
)

func TestFrontier_Enqueue(t *testing.T) {
	t.Parallel()

	t.Run("articles go to the back, pagination to the front", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		require.True(t, f.Enqueue("https://example.com/article1", searchlite.PriorityArticle))
		require.True(t, f.Enqueue("https://example.com/article2", searchlite.PriorityArticle))
		require.True(t, f.Enqueue("https://example.com/page2", searchlite.PriorityPagination))

		url, ok := f.Dequeue()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/page2", url)

		url, ok = f.Dequeue()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/article1", url)
	})

	t.Run("duplicate URLs leave the queue unchanged", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		require.True(t, f.Enqueue("https://example.com/a", searchlite.PriorityArticle))
		assert.False(t, f.Enqueue("https://example.com/a", searchlite.PriorityArticle))
		assert.False(t, f.Enqueue("https://example.com/a", searchlite.PriorityPagination))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("URLs differing only by fragment deduplicate together", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		require.True(t, f.Enqueue("https://example.com/a#intro", searchlite.PriorityArticle))
		assert.False(t, f.Enqueue("https://example.com/a#details", searchlite.PriorityArticle))
		assert.False(t, f.Enqueue("https://example.com/a", searchlite.PriorityArticle))

		url, ok := f.Dequeue()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/a", url)
	})

	t.Run("indexed URLs are not re-enqueued", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		f.MarkIndexed("https://example.com/done")
		assert.False(t, f.Enqueue("https://example.com/done", searchlite.PriorityArticle))
		assert.Zero(t, f.Len())
	})

	t.Run("dequeued URL may be enqueued again until marked indexed", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		require.True(t, f.Enqueue("https://example.com/a", searchlite.PriorityArticle))
		_, ok := f.Dequeue()
		require.True(t, ok)

		assert.True(t, f.Enqueue("https://example.com/a", searchlite.PriorityArticle))
	})
}

func TestFrontier_Dequeue(t *testing.T) {
	t.Parallel()

	t.Run("empty frontier reports not ok", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		_, ok := f.Dequeue()
		assert.False(t, ok)
	})
}

func TestFrontier_Indexed(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	assert.False(t, f.Indexed("https://example.com/a"))
	f.MarkIndexed("https://example.com/a")
	assert.True(t, f.Indexed("https://example.com/a"))
	assert.True(t, f.Indexed("https://example.com/a#section"))
}

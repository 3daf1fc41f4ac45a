package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"searchlite/sqlite"
)

// openTestDB opens an in-memory database with the schema created.
func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		ctx := context.Background()

		var docCount int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&docCount)
		require.NoError(t, err)

		var postingCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM postings").Scan(&postingCount)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		require.Error(t, db.Open())
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(t.TempDir() + "/test.db")
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("cascades posting deletes from documents", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		ctx := context.Background()

		_, err := db.ExecContext(ctx, `
			INSERT INTO documents (url, title, content, content_hash, last_fetched)
			VALUES ('https://example.com/a', 't', 'c', 'h', '2026-01-01T00:00:00Z')
		`)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `INSERT INTO postings (term, doc_id, positions) VALUES ('cat', 1, '[0]')`)
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, `DELETE FROM documents WHERE id = 1`)
		require.NoError(t, err)

		var count int
		err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM postings`).Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

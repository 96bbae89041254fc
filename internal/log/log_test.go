package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Use temp directory for test database
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	defer func() { dbPathFunc = origDBPath }()

	t.Run("open and close", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		// Verify database file exists
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetDatabase("/test/campaigns.db")

		Log(Entry{
			Source:   "arc:show",
			Action:   "read",
			Campaign: "lost-mine",
			Kind:     "arc",
			Slug:     "goblin-ambush",
			Success:  true,
		})

		// Verify entry was written
		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var source, action, campaign, kind, slug string
		var success int
		err = db.QueryRow("SELECT source, action, campaign, kind, slug, success FROM log WHERE id = 1").
			Scan(&source, &action, &campaign, &kind, &slug, &success)
		require.NoError(t, err)
		assert.Equal(t, "arc:show", source)
		assert.Equal(t, "read", action)
		assert.Equal(t, "lost-mine", campaign)
		assert.Equal(t, "arc", kind)
		assert.Equal(t, "goblin-ambush", slug)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		// Reset global for clean test
		Close()

		err := Open()
		require.NoError(t, err)
		defer Close()

		SetDatabase("/test/campaigns.db")

		Log(Entry{
			Source:   "arc:show",
			Action:   "read",
			Campaign: "lost-mine",
			Slug:     "missing",
			Success:  false,
			Error:    "not found",
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "not found", errMsg)
	})

	t.Run("log with detail", func(t *testing.T) {
		Close()

		err := Open()
		require.NoError(t, err)
		defer Close()

		SetDatabase("/test/campaigns.db")

		Log(Entry{
			Source:  "search:query",
			Action:  "search",
			Success: true,
			Detail:  map[string]any{"query": "dragon", "count": 42},
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var detail string
		err = db.QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.Contains(t, detail, "dragon")
		assert.Contains(t, detail, "42")
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()

		// Should not panic
		Log(Entry{
			Source:  "test:cmd",
			Action:  "test",
			Success: true,
		})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)

		err = Open() // second call should succeed
		require.NoError(t, err)

		Close()
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/campaigns.db")
	h2 := hash("/home/user/campaigns.db")
	h3 := hash("/home/user/other.db")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expected := filepath.Join(home, ".arcaide", "log", "arcaide-log.db")

	// Use default path function
	origDBPath := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = origDBPath }()

	assert.Equal(t, expected, DBPath())
}

func TestBuilder(t *testing.T) {
	// Use temp directory for test database
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	defer func() { dbPathFunc = origDBPath }()

	t.Run("fluent API success", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetDatabase("/test/campaigns.db")

		Event("arc:rename", "rename").
			Campaign("lost-mine").
			Entity("arc", "old-arc").
			Resolved("new-arc").
			Write(nil) // success

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var source, action, campaign, slug, resolved string
		var success int
		err = db.QueryRow("SELECT source, action, campaign, slug, resolved_slug, success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&source, &action, &campaign, &slug, &resolved, &success)
		require.NoError(t, err)
		assert.Equal(t, "arc:rename", source)
		assert.Equal(t, "rename", action)
		assert.Equal(t, "lost-mine", campaign)
		assert.Equal(t, "old-arc", slug)
		assert.Equal(t, "new-arc", resolved)
		assert.Equal(t, 1, success)
	})

	t.Run("fluent API records author", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetDatabase("/test/campaigns.db")
		SetAuthor("gm")
		defer SetAuthor("")

		Event("campaign:ls", "list").Write(nil)

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var author string
		err = db.QueryRow("SELECT author FROM log ORDER BY id DESC LIMIT 1").Scan(&author)
		require.NoError(t, err)
		assert.Equal(t, "gm", author)
	})

	t.Run("fluent API with error", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetDatabase("/test/campaigns.db")

		testErr := sql.ErrNoRows // use any error
		Event("arc:show", "read").
			Campaign("lost-mine").
			Entity("arc", "missing").
			Write(testErr)

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, testErr.Error(), errMsg)
	})

	t.Run("fluent API with Detail", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetDatabase("/test/campaigns.db")

		Event("search:query", "search").
			Campaign("lost-mine").
			Detail("query", "dragon").
			Detail("count", 42).
			Write(nil)

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var detail string
		err = db.QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.Contains(t, detail, "dragon")
		assert.Contains(t, detail, "42")
	})
}

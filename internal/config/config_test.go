package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultListen, c.Listen())
	assert.Equal(t, DefaultSearchLimit, c.SearchLimit())
	assert.Equal(t, DefaultMaxName, c.MaxName())
	assert.Equal(t, int64(DefaultMaxContent), c.MaxContent())
	assert.True(t, c.FuzzyDefault())
	assert.NotEmpty(t, c.DBPath())
}

func TestGetSet(t *testing.T) {
	var c Config

	require.NoError(t, c.Set("server.listen", "0.0.0.0:9000"))
	require.NoError(t, c.Set("search.fuzzy", "false"))
	require.NoError(t, c.Set("search.limit", "10"))
	require.NoError(t, c.Set("limits.max_name", "64"))

	got, err := c.Get("server.listen")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", got)
	assert.False(t, c.FuzzyDefault())
	assert.Equal(t, 10, c.SearchLimit())
	assert.Equal(t, 64, c.MaxName())

	assert.True(t, c.IsSet("search.fuzzy"))
	assert.False(t, c.IsSet("database.path"))
}

func TestSetInvalid(t *testing.T) {
	var c Config

	assert.ErrorIs(t, c.Set("search.fuzzy", "maybe"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("search.limit", "-1"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_content", "zero"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("no.such.key", "x"), ErrUnknownKey)

	_, err := c.Get("no.such.key")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestValidateBounds(t *testing.T) {
	var c Config
	n := MaxSearchLimit + 1
	c.Search.Limit = &n
	assert.ErrorIs(t, c.Validate(), ErrInvalidValue)

	c.Search.Limit = nil
	big := int64(MaxMaxContent) + 1
	c.Limits.MaxContent = &big
	assert.ErrorIs(t, c.Validate(), ErrInvalidValue)
}

func TestSaveAndLoadScope(t *testing.T) {
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	defer os.Chdir(cwd)

	var c Config
	require.NoError(t, c.Set("author.name", "gm"))
	require.NoError(t, c.Set("search.limit", "25"))
	require.NoError(t, c.SaveScope(ScopeLocal))

	assert.FileExists(t, filepath.Join(tmp, ".arcaide", "config.yaml"))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.Equal(t, "gm", loaded.Author.Name)
	assert.Equal(t, 25, loaded.SearchLimit())
}

func TestLoadMalformed(t *testing.T) {
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	defer os.Chdir(cwd)

	require.NoError(t, os.MkdirAll(".arcaide", 0755))
	require.NoError(t, os.WriteFile(filepath.Join(".arcaide", "config.yaml"), []byte("{{not yaml"), 0644))

	_, err = Load()
	assert.Error(t, err)
}

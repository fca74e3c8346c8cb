package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, "session_key: test-secret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3004", cfg.Listen)
	assert.Equal(t, 172800, cfg.SessionMaxAge)
	assert.Equal(t, "./data/textlens.db", cfg.Database.Path)
	assert.Equal(t, "./models/misinformation_model.gob", cfg.Models.MisinformationModel)
	assert.Equal(t, "https://www.reddit.com", cfg.Reddit.URL)
	assert.Equal(t, 5, cfg.Reddit.SearchLimit)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
}

func TestLoadRequiresSessionKey(t *testing.T) {
	path := writeConfigFile(t, "listen: 0.0.0.0:8080\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session key")
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
listen: 127.0.0.1:9000
session_key: test-secret
database:
  path: /tmp/test.db
reddit:
  url: https://reddit.example.com/
  search_limit: 3
cache:
  type: memory
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	// trailing slash is stripped
	assert.Equal(t, "https://reddit.example.com", cfg.Reddit.URL)
	assert.Equal(t, 3, cfg.Reddit.SearchLimit)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TEXTLENS_LISTEN", "127.0.0.1:7777")
	t.Setenv("TEXTLENS_REDDIT_SEARCH_LIMIT", "2")

	path := writeConfigFile(t, "session_key: test-secret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7777", cfg.Listen)
	assert.Equal(t, 2, cfg.Reddit.SearchLimit)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name: "invalid session max age",
			content: `
session_key: test-secret
session_max_age: 0
`,
			errMsg: "session max age",
		},
		{
			name: "redis cache without url",
			content: `
session_key: test-secret
cache:
  type: redis
`,
			errMsg: "Redis URL",
		},
		{
			name: "invalid search limit",
			content: `
session_key: test-secret
reddit:
  search_limit: -1
`,
			errMsg: "search limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

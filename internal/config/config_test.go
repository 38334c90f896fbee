package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "localhost:9090", cfg.Server.Addr())
	assert.Equal(t, 5, cfg.Rating.Timeout)
	assert.Equal(t, "TAX_NavigationTax", cfg.NavTags.Marker)
	assert.Equal(t, 2, cfg.NavTags.MinArticleCount)
	assert.Equal(t, "skip", cfg.NavTags.LookupPolicy)
	assert.Equal(t, 0, cfg.API.Timeout)
	assert.Equal(t, "https://support.example.com/kb/", cfg.API.KBLinkBase)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
api:
  base_url: http://articles.internal
navtags:
  lookup_policy: fatal
  min_article_count: 4
redis:
  enabled: true
  host: cache
  port: 6380
database:
  host: db
  port: 5433
  name: kb
  user: u
  password: p
`))
	require.NoError(t, err)

	assert.Equal(t, "http://articles.internal", cfg.API.BaseURL)
	assert.Equal(t, "fatal", cfg.NavTags.LookupPolicy)
	assert.Equal(t, 4, cfg.NavTags.MinArticleCount)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=kb sslmode=disable", cfg.Database.DSN())
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "navtags:\n  lookup_policy: maybe\n"))
	assert.ErrorContains(t, err, "lookup_policy")

	_, err = Load(writeConfig(t, "rating:\n  timeout: 0\n"))
	assert.ErrorContains(t, err, "rating.timeout")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

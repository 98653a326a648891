package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://forkify-api.herokuapp.com/api/v2/recipes/", cfg.API.URL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.Search.ResultsPerPage)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, "memory", cfg.Server.Repository)
	assert.Equal(t, uint(500), cfg.Server.ThumbnailHeight)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "eteats.yaml")
	body := `
api:
  url: http://localhost:9999/api/v2/recipes/
  key: from-file
search:
  results_per_page: 5
storage:
  driver: memory
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("ETEATS_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/api/v2/recipes/", cfg.API.URL)
	assert.Equal(t, "from-env", cfg.API.Key)
	assert.Equal(t, 5, cfg.Search.ResultsPerPage)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ETEATS_SEARCH_RESULTS_PER_PAGE=7\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("ETEATS_SEARCH_RESULTS_PER_PAGE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.ResultsPerPage)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			API:     APIConfig{URL: "http://x/"},
			Search:  SearchConfig{ResultsPerPage: 10},
			Storage: StorageConfig{Driver: "memory"},
			Server:  ServerConfig{Repository: "memory"},
		}
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.API.URL = " " }},
		{"zero page size", func(c *Config) { c.Search.ResultsPerPage = 0 }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }},
		{"file without path", func(c *Config) { c.Storage.Driver = "file" }},
		{"redis without address", func(c *Config) { c.Storage.Driver = "redis" }},
		{"firestore without project", func(c *Config) { c.Server.Repository = "firestore" }},
		{"bigquery without dataset", func(c *Config) {
			c.Server.Repository = "bigquery"
			c.Server.BigQueryProject = "p"
		}},
		{"unknown repository", func(c *Config) { c.Server.Repository = "mongo" }},
	}

	base := valid()
	require.NoError(t, base.Validate())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

// Package config loads eteats settings from an optional YAML file, .env files
// and ETEATS_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ETEATS"

// Config is the full application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig points the client at the recipe API.
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Key     string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig controls result paging.
type SearchConfig struct {
	ResultsPerPage int `mapstructure:"results_per_page"`
}

// StorageConfig selects where bookmarks live.
type StorageConfig struct {
	Driver        string `mapstructure:"driver"`
	Path          string `mapstructure:"path"`
	RedisAddress  string `mapstructure:"redis_address"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
}

// ServerConfig configures `eteats serve`.
type ServerConfig struct {
	Addr                string   `mapstructure:"addr"`
	Repository          string   `mapstructure:"repository"`
	FirestoreProject    string   `mapstructure:"firestore_project"`
	FirestoreCollection string   `mapstructure:"firestore_collection"`
	BigQueryProject     string   `mapstructure:"bigquery_project"`
	BigQueryDataset     string   `mapstructure:"bigquery_dataset"`
	BigQueryTable       string   `mapstructure:"bigquery_table"`
	CredentialsFile     string   `mapstructure:"credentials_file"`
	SeedFile            string   `mapstructure:"seed_file"`
	AllowedOrigins      []string `mapstructure:"allowed_origins"`
	ThumbnailHeight     uint     `mapstructure:"thumbnail_height"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", "https://forkify-api.herokuapp.com/api/v2/recipes/")
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("search.results_per_page", 10)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("storage.redis_address", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.redis_prefix", "eteats:")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.repository", "memory")
	v.SetDefault("server.firestore_project", "")
	v.SetDefault("server.firestore_collection", "recipes")
	v.SetDefault("server.bigquery_project", "")
	v.SetDefault("server.bigquery_dataset", "")
	v.SetDefault("server.bigquery_table", "recipes")
	v.SetDefault("server.credentials_file", "")
	v.SetDefault("server.seed_file", "")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.thumbnail_height", 500)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", true)
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".eteats/storage.json"
	}
	return filepath.Join(dir, "eteats", "storage.json")
}

// Load reads configuration. An empty path means "no config file"; a
// missing .env file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return errors.New("config: api.url is required")
	}
	if c.Search.ResultsPerPage <= 0 {
		return fmt.Errorf("config: search.results_per_page must be positive, got %d", c.Search.ResultsPerPage)
	}
	switch c.Storage.Driver {
	case "file":
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("config: storage.path is required for the file driver")
		}
	case "redis":
		if strings.TrimSpace(c.Storage.RedisAddress) == "" {
			return errors.New("config: storage.redis_address is required for the redis driver")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	switch c.Server.Repository {
	case "memory":
	case "firestore":
		if c.Server.FirestoreProject == "" {
			return errors.New("config: server.firestore_project is required for the firestore repository")
		}
	case "bigquery":
		if c.Server.BigQueryProject == "" || c.Server.BigQueryDataset == "" {
			return errors.New("config: server.bigquery_project and server.bigquery_dataset are required for the bigquery repository")
		}
	default:
		return fmt.Errorf("config: unknown server.repository %q", c.Server.Repository)
	}
	return nil
}

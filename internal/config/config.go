package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Document source kinds
const (
	SourceGitHub     = "github"
	SourceFilesystem = "filesystem"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Documents DocumentsConfig
	GitHub    GitHubConfig
	Redis     RedisConfig
	Engine    EngineConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port               string   `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`
	Env                string   `envconfig:"APP_ENV" default:"production"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// DocumentsConfig selects and tunes the document store
type DocumentsConfig struct {
	Source        string        `envconfig:"DOCUMENT_SOURCE" default:"github"`
	DataDir       string        `envconfig:"DATA_DIR" default:"."`
	CacheDir      string        `envconfig:"DATA_CACHE_DIR" default:"/tmp/data_adapter_cache"`
	ScanFolders   []string      `envconfig:"SCAN_FOLDERS" default:"classes,features,spells,races,backgrounds,items"`
	ClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
}

// GitHubConfig holds the content repository coordinates
type GitHubConfig struct {
	Owner       string `envconfig:"GITHUB_OWNER" default:"Ocytowine"`
	Repo        string `envconfig:"GITHUB_REPO" default:"ArchiveValmorinTest"`
	Branch      string `envconfig:"GITHUB_BRANCH" default:"main"`
	Token       string `envconfig:"GITHUB_TOKEN"`
	RawFallback bool   `envconfig:"GITHUB_RAW_FALLBACK" default:"true"`
	APIURL      string `envconfig:"GITHUB_API_URL" default:"https://api.github.com"`
	RawURL      string `envconfig:"GITHUB_RAW_URL" default:"https://raw.githubusercontent.com"`
}

// RedisConfig holds the optional Redis document cache settings
type RedisConfig struct {
	URL      string        `envconfig:"REDIS_URL"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"24h"`
}

// EngineConfig tunes the resolver
type EngineConfig struct {
	MaxTraversalSteps int    `envconfig:"FEATURE_MAX_STEPS" default:"8"`
	LabelLocale       string `envconfig:"LABEL_LOCALE" default:"fr"`
	CatalogFetches    int    `envconfig:"CATALOG_CONCURRENCY" default:"8"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the combination of settings
func (c *Config) Validate() error {
	c.Documents.Source = strings.ToLower(strings.TrimSpace(c.Documents.Source))

	switch c.Documents.Source {
	case SourceGitHub:
		if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
			return fmt.Errorf("GITHUB_OWNER and GITHUB_REPO are required for the github source")
		}
	case SourceFilesystem:
		if c.Documents.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the filesystem source")
		}
	default:
		return fmt.Errorf("unsupported DOCUMENT_SOURCE %q", c.Documents.Source)
	}

	if c.Engine.MaxTraversalSteps < 1 {
		return fmt.Errorf("FEATURE_MAX_STEPS must be positive, got %d", c.Engine.MaxTraversalSteps)
	}

	return nil
}

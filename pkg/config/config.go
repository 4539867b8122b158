package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/newscrawl/pkg/domain"
)

//go:generate go run ../../cmd/schema -o schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newscrawl.db?cache=shared&mode=rwc,description=Database connection string (sqlite file or postgres:// URL)"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Crawl CrawlConfig `yaml:"crawl" json:"crawl" jsonschema:"description=Crawl configuration"`

	Sources []Source `yaml:"sources" json:"sources" jsonschema:"description=Feed sources, built-in list is used if empty"`
}

// CrawlConfig holds settings of a single ingestion pass
type CrawlConfig struct {
	FetchTimeout  time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=20s,description=Timeout for fetching a single feed"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=0,description=Maximum concurrent feed fetches (0 for unlimited)"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newscrawl/1.0,description=User agent for feed requests"`
	Schedule      string        `yaml:"schedule" json:"schedule" jsonschema:"description=Cron schedule for periodic crawls (e.g. */5 * * * *), empty to disable"`
}

// Source is a feed source entry
type Source struct {
	Name     string `yaml:"name" json:"name" jsonschema:"required,description=Source name stored with every article"`
	URL      string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Category string `yaml:"category" json:"category" jsonschema:"required,enum=general,enum=gold,enum=stock,description=Category assigned to articles of this source"`
}

// Default returns configuration with all defaults set and the built-in sources
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:newscrawl.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for crawl
	if cfg.Crawl.FetchTimeout == 0 {
		cfg.Crawl.FetchTimeout = 20 * time.Second
	}
	if cfg.Crawl.UserAgent == "" {
		cfg.Crawl.UserAgent = "Newscrawl/1.0"
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = BuiltinSources()
	}
}

// Validate checks configuration for correctness
func (c *Config) Validate() error {
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if c.Crawl.FetchTimeout < 100*time.Millisecond {
		return fmt.Errorf("crawl fetch_timeout must be at least 100ms")
	}
	if c.Crawl.MaxConcurrent < 0 {
		return fmt.Errorf("crawl max_concurrent must be non-negative")
	}

	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	names := make(map[string]struct{}, len(c.Sources))
	for i, src := range c.Sources {
		if strings.TrimSpace(src.Name) == "" {
			return fmt.Errorf("sources[%d]: name is required", i)
		}
		if _, ok := names[src.Name]; ok {
			return fmt.Errorf("sources[%d]: duplicate source name %q", i, src.Name)
		}
		names[src.Name] = struct{}{}

		u, err := url.Parse(src.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("sources[%d] %s: invalid url %q", i, src.Name, src.URL)
		}
		if !domain.Category(src.Category).Valid() {
			return fmt.Errorf("sources[%d] %s: unknown category %q", i, src.Name, src.Category)
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetSources returns configured sources in registration order
func (c *Config) GetSources() []domain.Source {
	res := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		res = append(res, domain.Source{Name: s.Name, URL: s.URL, Category: domain.Category(s.Category)})
	}
	return res
}

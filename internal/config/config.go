package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Postgres PostgresConfig `json:"postgres"`
	Logging  LoggingConfig  `json:"logging"`
}

type ServerConfig struct {
	// Address is the host:port the HTTP server binds to.
	Address string `json:"address"`
}

type PostgresConfig struct {
	// URL is a lib/pq connection string.
	URL string `json:"url"`
	// MigrationsURL is a golang-migrate source, e.g. file://migrations.
	MigrationsURL string `json:"migrations_url"`
	// DatabaseName is passed to the migrate driver.
	DatabaseName string `json:"database_name"`
}

type LoggingConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level"`
	// Pretty switches to the human-readable console writer.
	Pretty bool `json:"pretty"`
}

func (c *Config) SetDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Postgres.MigrationsURL == "" {
		c.Postgres.MigrationsURL = "file://migrations"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c Config) Validate() error {
	if c.Postgres.URL == "" {
		return fmt.Errorf("postgres.url is required")
	}

	return nil
}

// Load reads configuration from an optional JSON/YAML file, then applies
// APP_-prefixed environment overrides (APP_POSTGRES__URL -> postgres.url).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("APP_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "app_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

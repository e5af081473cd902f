// Package config loads settings from defaults, an optional .env file, an
// optional YAML file and PROPERTYFINDER_* environment variables, in that order
// of increasing precedence.
package config

import (
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override,
// e.g. PROPERTYFINDER_API_BASE_URL.
const EnvPrefix = "PROPERTYFINDER"

// Zoning projections understood by the zoning index.
const (
	ProjectionWGS84          = "wgs84"
	ProjectionTXNorthCentral = "tx-north-central"
)

// Config holds the application settings.
type Config struct {
	API       API       `yaml:"api"`
	Log       Log       `yaml:"log"`
	Zoning    Zoning    `yaml:"zoning"`
	Shortlist Shortlist `yaml:"shortlist"`
	Metrics   Metrics   `yaml:"metrics"`
}

type API struct {
	BaseURL string `yaml:"base_url" split_words:"true"`
	// Timeout bounds each search request; zero means no limit.
	Timeout time.Duration `yaml:"timeout" split_words:"true"`
}

type Log struct {
	Level string `yaml:"level" split_words:"true"`
	// File receives the log while the TUI owns the terminal.
	File string `yaml:"file" split_words:"true"`
}

type Zoning struct {
	// Layers are polygon shapefiles (.shp with .dbf alongside).
	Layers     []string `yaml:"layers" split_words:"true"`
	Projection string   `yaml:"projection" split_words:"true"`
}

type Shortlist struct {
	File   string `yaml:"file" split_words:"true"`
	Oracle Oracle `yaml:"oracle"`
}

// Oracle selects the database-backed shortlist when Host is set.
type Oracle struct {
	Host           string `yaml:"host" split_words:"true"`
	Port           int    `yaml:"port" split_words:"true"`
	Service        string `yaml:"service" split_words:"true"`
	Username       string `yaml:"username" split_words:"true"`
	Password       string `yaml:"password" split_words:"true"`
	WalletLocation string `yaml:"wallet_location" split_words:"true"`
}

// Enabled reports whether an Oracle connection is configured.
func (o Oracle) Enabled() bool { return o.Host != "" }

type Metrics struct {
	// Addr serves /metrics when non-empty, e.g. ":9090".
	Addr string `yaml:"addr" split_words:"true"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		API:       API{BaseURL: "http://127.0.0.1:8000"},
		Log:       Log{Level: "info", File: "propertyfinder.log"},
		Zoning:    Zoning{Projection: ProjectionWGS84},
		Shortlist: Shortlist{File: "data/shortlist.csv", Oracle: Oracle{Port: 1521}},
	}
}

// Load builds a Config. path names a YAML file; when empty,
// PROPERTYFINDER_CONFIG is consulted, and with neither the YAML step is
// skipped. A .env file in the working directory is loaded if present and
// never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "process environment variables")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}

// Validate checks settings that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("api.base_url %q must be an absolute http(s) url", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return errors.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	switch c.Zoning.Projection {
	case ProjectionWGS84, ProjectionTXNorthCentral:
	default:
		return errors.Errorf("zoning.projection %q is not one of %s, %s",
			c.Zoning.Projection, ProjectionWGS84, ProjectionTXNorthCentral)
	}
	if c.Shortlist.Oracle.Enabled() && c.Shortlist.Oracle.Service == "" {
		return errors.New("shortlist.oracle.service is required when shortlist.oracle.host is set")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"rentadmin/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Redis      RedisConfig      `yaml:"redis"`
	UI         UIConfig         `yaml:"ui"`
	Exports    ExportConfig     `yaml:"exports"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port      int             `yaml:"port"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type AuthConfig struct {
	Enabled      bool        `yaml:"enabled"`
	HeaderAPIKey string      `yaml:"header_api_key"`
	HeaderExtra  string      `yaml:"header_extra"`
	APIKeys      []ClientKey `yaml:"api_keys"`
}

type ClientKey struct {
	Key   string `yaml:"key"`
	Extra string `yaml:"extra"`
	Name  string `yaml:"name"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// StoreConfig points at the external record store service. The store
// is the sole source of truth; there is no local persistence.
type StoreConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	APIKey         string `yaml:"api_key"`
	APIExtra       string `yaml:"api_extra"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type UIConfig struct {
	Title         string `yaml:"title"`
	CurrencyGlyph string `yaml:"currency_glyph"`
	// ConfirmDestructiveActions gates deletes behind a confirmation
	// round trip. Kept configurable: operators disagree on it.
	ConfirmDestructiveActions *bool `yaml:"confirm_destructive_actions"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment variables referenced from the YAML
	// are expanded below either way.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Store.BaseURL == "" {
		return errors.New("store base_url is required")
	}
	if _, err := url.ParseRequestURI(c.Store.BaseURL); err != nil {
		return fmt.Errorf("store base_url is invalid: %w", err)
	}
	if c.Server.Auth.Enabled && len(c.Server.Auth.APIKeys) == 0 {
		return errors.New("server auth enabled but no api_keys configured")
	}
	return nil
}

// ConfirmDeletes resolves the tri-state confirmation setting; unset
// means confirm.
func (c *Config) ConfirmDeletes() bool {
	if c.UI.ConfirmDestructiveActions == nil {
		return true
	}
	return *c.UI.ConfirmDestructiveActions
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "rentadmin"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Store.TimeoutSeconds == 0 {
		c.Store.TimeoutSeconds = models.DefaultStoreTimeoutSeconds
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Server.Auth.HeaderAPIKey == "" {
		c.Server.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.Server.Auth.HeaderExtra == "" {
		c.Server.Auth.HeaderExtra = "x-api-extra"
	}
	if c.UI.Title == "" {
		c.UI.Title = "Rental Admin"
	}
	if c.UI.CurrencyGlyph == "" {
		c.UI.CurrencyGlyph = models.DefaultCurrencyGlyph
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}

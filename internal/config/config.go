// Package config loads widget settings from .env, an optional YAML file and
// the process environment, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/service"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all runtime settings
type Config struct {
	OpenWeather OpenWeatherConfig `yaml:"openweather"`
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
	Timezone    string            `yaml:"timezone"`
	Env         string            `yaml:"env"`
}

// OpenWeatherConfig holds provider endpoints and the credential
type OpenWeatherConfig struct {
	APIKey      string `yaml:"api_key"`
	CurrentURL  string `yaml:"current_url"`
	ForecastURL string `yaml:"forecast_url"`
	IconURL     string `yaml:"icon_url"`
	Timeout     string `yaml:"timeout"`
}

// StorageConfig selects and configures the last-city store
type StorageConfig struct {
	Driver        string `yaml:"driver"`
	SQLitePath    string `yaml:"sqlite_path"`
	DatabaseURL   string `yaml:"database_url"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		OpenWeather: OpenWeatherConfig{
			CurrentURL:  service.DefaultCurrentURL,
			ForecastURL: service.DefaultForecastURL,
			IconURL:     domain.DefaultIconURLTemplate,
			Timeout:     "10s",
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: "widget.db",
		},
		Server:   ServerConfig{Port: "8080"},
		Timezone: "Local",
		Env:      "development",
	}
}

// Load builds the configuration. path may be empty, in which case
// WIDGET_CONFIG is consulted; a missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using system environment")
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("WIDGET_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("config: %s not found, skipping", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setFromEnv(&c.OpenWeather.APIKey, "OPENWEATHER_API_KEY")
	setFromEnv(&c.OpenWeather.CurrentURL, "OPENWEATHER_CURRENT_URL")
	setFromEnv(&c.OpenWeather.ForecastURL, "OPENWEATHER_FORECAST_URL")
	setFromEnv(&c.OpenWeather.IconURL, "OPENWEATHER_ICON_URL")
	setFromEnv(&c.OpenWeather.Timeout, "HTTP_TIMEOUT")
	setFromEnv(&c.Storage.Driver, "STORAGE_DRIVER")
	setFromEnv(&c.Storage.SQLitePath, "SQLITE_PATH")
	setFromEnv(&c.Storage.DatabaseURL, "DATABASE_URL")
	setFromEnv(&c.Storage.RedisAddr, "REDIS_ADDR")
	setFromEnv(&c.Storage.RedisPassword, "REDIS_PASSWORD")
	setFromEnv(&c.Server.Port, "PORT")
	setFromEnv(&c.Timezone, "WIDGET_TIMEZONE")
	setFromEnv(&c.Env, "GO_ENV")

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid REDIS_DB %q: %w", v, err)
		}
		c.Storage.RedisDB = db
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

// Validate checks the fields that are parsed lazily
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if _, err := c.HTTPTimeout(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// HasCredential reports whether a usable API key is set
func (c *Config) HasCredential() bool {
	return service.IsUsableAPIKey(c.OpenWeather.APIKey)
}

// HTTPTimeout parses the provider timeout. Empty means 10s.
func (c *Config) HTTPTimeout() (time.Duration, error) {
	if c.OpenWeather.Timeout == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(c.OpenWeather.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: invalid HTTP timeout %q: %w", c.OpenWeather.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: HTTP timeout must be positive, got %s", d)
	}
	return d, nil
}

// Location resolves Timezone; "" and "Local" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// IsProduction reports whether GO_ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

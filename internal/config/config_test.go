package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"OPENWEATHER_API_KEY", "OPENWEATHER_CURRENT_URL", "OPENWEATHER_FORECAST_URL",
	"OPENWEATHER_ICON_URL", "HTTP_TIMEOUT", "STORAGE_DRIVER", "SQLITE_PATH",
	"DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "PORT",
	"WIDGET_TIMEZONE", "GO_ENV", "WIDGET_CONFIG",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "widget.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "widget.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.OpenWeather.CurrentURL)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/forecast", cfg.OpenWeather.ForecastURL)
	assert.False(t, cfg.HasCredential())

	timeout, err := cfg.HTTPTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
openweather:
  api_key: from-file
  timeout: 3s
storage:
  driver: redis
  redis_addr: cache:6379
  redis_db: 2
server:
  port: "9000"
timezone: UTC
`)
	t.Setenv("PORT", "9100")
	t.Setenv("REDIS_DB", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.OpenWeather.APIKey)
	assert.True(t, cfg.HasCredential())
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 5, cfg.Storage.RedisDB, "env wins over file")
	assert.Equal(t, "9100", cfg.Server.Port, "env wins over file")
	// unset in file keeps the default
	assert.Equal(t, "widget.db", cfg.Storage.SQLitePath)

	timeout, err := cfg.HTTPTimeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, timeout)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIDGET_CONFIG", writeFile(t, "storage:\n  driver: memory\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoad_MissingFileIsSkipped(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "timeout", env: map[string]string{"HTTP_TIMEOUT": "soon"}},
		{name: "negative timeout", env: map[string]string{"HTTP_TIMEOUT": "-1s"}},
		{name: "timezone", env: map[string]string{"WIDGET_TIMEZONE": "Mars/Olympus_Mons"}},
		{name: "redis db", env: map[string]string{"REDIS_DB": "two"}},
		{name: "yaml", file: "storage: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestHasCredential(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"your_api_key_here", false},
		{"abc123", true},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.OpenWeather.APIKey = tt.key
		assert.Equal(t, tt.want, cfg.HasCredential(), "key %q", tt.key)
	}
}

func TestDriverIsNormalized(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", " Postgres ")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
}

func TestIsProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.False(t, Default().IsProduction())
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	// Test with default values (without config file)
	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.NotNil(t, config)

	assert.Equal(t, "city-forecast", config.App.Name)
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 10, config.Server.ReadTimeout)
	assert.Equal(t, 10, config.Server.WriteTimeout)
	assert.Equal(t, 120, config.Server.IdleTimeout)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/forecast", config.Weather.Endpoint)
	assert.Equal(t, "imperial", config.Weather.Units)
	assert.Equal(t, 15, config.Weather.Timeout)
	assert.Equal(t, "city1", config.Display.Target)
	assert.Equal(t, 5, config.Display.Days)
	assert.Equal(t, "forecast_session", config.Session.CookieName)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)

	// Without config file the API key stays empty
	assert.Empty(t, config.Weather.APIKey)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_VERSION", "2.0.0")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("WEATHER_API_KEY", "env-key")
	t.Setenv("WEATHER_UNITS", "metric")
	t.Setenv("DISPLAY_DAYS", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")

	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "2.0.0", config.App.Version)
	assert.Equal(t, "production", config.App.Env)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "env-key", config.Weather.APIKey)
	assert.Equal(t, "metric", config.Weather.Units)
	assert.Equal(t, 3, config.Display.Days)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "https://key@sentry.example/1", config.Sentry.DSN)
	assert.True(t, config.IsProduction())
}

func TestFileConfigProvider_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: from-file
weather:
  api_key: file-key
  units: metric
display:
  days: 4
`), 0o600))

	t.Setenv("WEATHER_API_KEY", "env-key")

	config, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.App.Name)
	assert.Equal(t, "metric", config.Weather.Units)
	assert.Equal(t, 4, config.Display.Days)
	// Environment wins over the file
	assert.Equal(t, "env-key", config.Weather.APIKey)
	// Keys absent from the file keep their defaults
	assert.Equal(t, "8080", config.Server.Port)
}

func TestFileConfigProvider_BrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unterminated"), 0o600))

	_, err := NewConfigWithProvider(NewFileConfigProvider(path))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	provider := NewFileConfigProvider("config/config.yaml")

	config := defaults()
	assert.NoError(t, provider.Validate(config))

	invalidConfig := defaults()
	invalidConfig.App.Name = ""
	invalidConfig.Weather.Units = "kelvin"
	invalidConfig.Display.Days = 0

	err := provider.Validate(invalidConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.name is required")
	assert.Contains(t, err.Error(), `weather.units "kelvin"`)
	assert.Contains(t, err.Error(), "display.days must be positive")
}

func TestConfigValidation_LogFormat(t *testing.T) {
	provider := NewFileConfigProvider("config/config.yaml")

	config := defaults()
	config.Log.Format = "console"
	assert.NoError(t, provider.Validate(config))

	config.Sentry.DSN = "https://key@sentry.example/1"
	assert.ErrorContains(t, provider.Validate(config), "sentry.dsn requires log.format json")

	config.Log.Format = "logfmt"
	assert.ErrorContains(t, provider.Validate(config), `log.format "logfmt"`)
}

func TestConfigHelperMethods(t *testing.T) {
	config := &Config{
		App: AppConfig{
			Env: "development",
		},
	}

	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())
}

func TestFileConfigProvider_LoadFromFile(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config := &Config{}

	// Test loading from non-existent file (should not error)
	err := provider.loadFromFile(config)
	assert.NoError(t, err)
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{config: defaults()}

	config, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "city-forecast", config.App.Name)

	failing := &MockConfigProvider{err: errors.New("disk on fire")}
	_, err = NewConfigWithProvider(failing)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestConfigFileLoading(t *testing.T) {
	// The checked-in file lives next to this test
	config, err := NewConfigWithProvider(NewFileConfigProvider("config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "YOUR-API-KEY-HERE", config.Weather.APIKey)
	assert.Equal(t, "city1", config.Display.Target)
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config *Config
	err    error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(config *Config) error {
	return nil
}

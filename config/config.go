package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Weather WeatherConfig `yaml:"weather"`
	Display DisplayConfig `yaml:"display"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME"`
	Version string `yaml:"version" envconfig:"VERSION"`
	Env     string `yaml:"env" envconfig:"ENV"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
}

// WeatherConfig describes the upstream forecast endpoint. Timeout is in seconds.
type WeatherConfig struct {
	Endpoint string `yaml:"endpoint" envconfig:"ENDPOINT"`
	APIKey   string `yaml:"api_key" envconfig:"API_KEY"`
	Units    string `yaml:"units" envconfig:"UNITS"`
	Timeout  int    `yaml:"timeout" envconfig:"TIMEOUT"`
}

type DisplayConfig struct {
	Target       string `yaml:"target" envconfig:"TARGET"`
	Days         int    `yaml:"days" envconfig:"DAYS"`
	ImageBaseURL string `yaml:"image_base_url" envconfig:"IMAGE_BASE_URL"`
}

// SessionConfig IdleTTL is in minutes.
type SessionConfig struct {
	CookieName string `yaml:"cookie_name" envconfig:"COOKIE_NAME"`
	IdleTTL    int    `yaml:"idle_ttl" envconfig:"IDLE_TTL"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

// ConfigProvider loads and validates configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers defaults, a YAML file and the environment, in that order.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func NewConfig() (*Config, error) {
	path := defaultConfigPath
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}

	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err = provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaults()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Override with environment variables
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile treats a missing file as empty.
func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", p.path, err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	var errs []error

	if strings.TrimSpace(cnf.App.Name) == "" {
		errs = append(errs, errors.New("app.name is required"))
	}
	if strings.TrimSpace(cnf.Server.Port) == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if cnf.Server.ReadTimeout <= 0 || cnf.Server.WriteTimeout <= 0 || cnf.Server.IdleTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if strings.TrimSpace(cnf.Weather.Endpoint) == "" {
		errs = append(errs, errors.New("weather.endpoint is required"))
	}
	switch cnf.Weather.Units {
	case "standard", "metric", "imperial":
	default:
		errs = append(errs, fmt.Errorf("weather.units %q is not one of standard, metric, imperial", cnf.Weather.Units))
	}
	if cnf.Weather.Timeout <= 0 {
		errs = append(errs, errors.New("weather.timeout must be positive"))
	}
	if cnf.Display.Days <= 0 {
		errs = append(errs, errors.New("display.days must be positive"))
	}
	if strings.TrimSpace(cnf.Display.Target) == "" {
		errs = append(errs, errors.New("display.target is required"))
	}
	if strings.TrimSpace(cnf.Session.CookieName) == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}
	if cnf.Session.IdleTTL <= 0 {
		errs = append(errs, errors.New("session.idle_ttl must be positive"))
	}
	switch cnf.Log.Format {
	case "json":
	case "console":
		// Sentry reads structured lines.
		if cnf.Sentry.DSN != "" {
			errs = append(errs, errors.New("sentry.dsn requires log.format json"))
		}
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not supported", cnf.Log.Format))
	}

	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "city-forecast",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Weather: WeatherConfig{
			Endpoint: "https://api.openweathermap.org/data/2.5/forecast",
			Units:    "imperial",
			Timeout:  15,
		},
		Display: DisplayConfig{
			Target:       "city1",
			Days:         5,
			ImageBaseURL: "https://s3-us-west-2.amazonaws.com/static-resources.zybooks.com/",
		},
		Session: SessionConfig{
			CookieName: "forecast_session",
			IdleTTL:    30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

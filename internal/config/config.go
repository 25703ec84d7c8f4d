package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/weather-fetch/internal/credential"
	"github.com/eugenenazirov/weather-fetch/internal/logging"
	"github.com/eugenenazirov/weather-fetch/internal/weather"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	CredentialsFile   string        `yaml:"credentials_file"`
	Endpoint          string        `yaml:"endpoint"`
	Location          string        `yaml:"location"`
	Timeout           time.Duration `yaml:"timeout"`
	LogLevel          string        `yaml:"log_level"`
	FailOnRemoteError bool          `yaml:"fail_on_remote_error"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	CredentialsFile   string `yaml:"credentials_file"`
	Endpoint          string `yaml:"endpoint"`
	Location          string `yaml:"location"`
	Timeout           string `yaml:"timeout"`
	LogLevel          string `yaml:"log_level"`
	FailOnRemoteError *bool  `yaml:"fail_on_remote_error"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile        string
	EnvFile           string
	CredentialsFile   *string
	Endpoint          *string
	Location          *string
	Timeout           *time.Duration
	LogLevel          *string
	FailOnRemoteError *bool
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.EnvFile != "" {
		if err := godotenv.Load(overrides.EnvFile); err != nil {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	// Environment sits below the YAML file.
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config that reproduces the plain script behaviour:
// credentials from the working directory, fixed endpoint and location.
func defaultConfig() Config {
	return Config{
		CredentialsFile: credential.DefaultPath,
		Endpoint:        weather.DefaultEndpoint,
		Location:        weather.DefaultLocation,
		LogLevel:        logging.DefaultLevel,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.CredentialsFile != "" {
		cfg.CredentialsFile = yamlCfg.CredentialsFile
	}

	if yamlCfg.Endpoint != "" {
		cfg.Endpoint = yamlCfg.Endpoint
	}

	if yamlCfg.Location != "" {
		cfg.Location = yamlCfg.Location
	}

	if yamlCfg.Timeout != "" {
		d, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return fmt.Errorf("parse timeout %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = d
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.FailOnRemoteError != nil {
		cfg.FailOnRemoteError = *yamlCfg.FailOnRemoteError
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if path := strings.TrimSpace(os.Getenv("WEATHER_CREDENTIALS_FILE")); path != "" {
		cfg.CredentialsFile = path
	}

	if endpoint := strings.TrimSpace(os.Getenv("WEATHER_ENDPOINT")); endpoint != "" {
		cfg.Endpoint = endpoint
	}

	if location := strings.TrimSpace(os.Getenv("WEATHER_LOCATION")); location != "" {
		cfg.Location = location
	}

	if raw := strings.TrimSpace(os.Getenv("WEATHER_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse WEATHER_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if raw := strings.TrimSpace(os.Getenv("WEATHER_FAIL_ON_REMOTE_ERROR")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse WEATHER_FAIL_ON_REMOTE_ERROR: %w", err)
		}
		cfg.FailOnRemoteError = value
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.CredentialsFile != nil && *overrides.CredentialsFile != "" {
		cfg.CredentialsFile = *overrides.CredentialsFile
	}

	if overrides.Endpoint != nil && *overrides.Endpoint != "" {
		cfg.Endpoint = *overrides.Endpoint
	}

	if overrides.Location != nil && *overrides.Location != "" {
		cfg.Location = *overrides.Location
	}

	if overrides.Timeout != nil {
		cfg.Timeout = *overrides.Timeout
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.FailOnRemoteError != nil {
		cfg.FailOnRemoteError = *overrides.FailOnRemoteError
	}
}

// validateConfig reports every problem with the final configuration at once.
func validateConfig(cfg Config) error {
	var result *multierror.Error

	if strings.TrimSpace(cfg.CredentialsFile) == "" {
		result = multierror.Append(result, errors.New("credentials file path cannot be empty"))
	}
	if err := validateEndpoint(cfg.Endpoint); err != nil {
		result = multierror.Append(result, err)
	}
	if strings.TrimSpace(cfg.Location) == "" {
		result = multierror.Append(result, errors.New("location cannot be empty"))
	}
	if cfg.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be >= 0, got %s", cfg.Timeout))
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func validateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("endpoint %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", raw)
	}
	return nil
}

// Package config provides configuration loading and validation for the
// relevance engine binaries. It uses koanf to merge environment
// variables with optional file overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the relevance engine.
type Config struct {
	// Environment (development, staging, production)
	Env string `koanf:"env"`

	// Topic registry
	RedisURL        string        `koanf:"redis_url"`
	RegistryKey     string        `koanf:"registry_key"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	FetchTimeout    time.Duration `koanf:"fetch_timeout"`

	// Scoring
	CalibrationPath string  `koanf:"calibration_path"`
	DefaultRadiusKm float64 `koanf:"default_radius_km"`

	// Tracing
	TracingEnabled      bool    `koanf:"tracing_enabled"`
	TracingExporter     string  `koanf:"tracing_exporter"`
	TracingSamplingRate float64 `koanf:"tracing_sampling_rate"`
	OTLPEndpoint        string  `koanf:"otlp_endpoint"`
}

// Configuration validation errors.
var (
	ErrMissingRedisURL        = errors.New("NEWSRANK_REDIS_URL is required")
	ErrMissingRegistryKey     = errors.New("NEWSRANK_REGISTRY_KEY is required")
	ErrInvalidRefreshInterval = errors.New("NEWSRANK_REFRESH_INTERVAL must be a positive duration")
	ErrInvalidFetchTimeout    = errors.New("NEWSRANK_FETCH_TIMEOUT must be a positive duration")
	ErrInvalidRadius          = errors.New("NEWSRANK_DEFAULT_RADIUS_KM must be positive")
	ErrInvalidSamplingRate    = errors.New("NEWSRANK_TRACING_SAMPLING_RATE must be between 0 and 1")
)

// Default values for non-secret configuration.
const (
	DefaultEnv             = "development"
	DefaultRedisURL        = "redis://localhost:6379/0"
	DefaultRegistryKey     = "topics:registry"
	DefaultRefreshInterval = 5 * time.Minute
	DefaultFetchTimeout    = 1 * time.Second
	DefaultRadiusKm        = 10.0
	DefaultSamplingRate    = 1.0
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if
// valid). If a config file path is provided and the file cannot be
// loaded, an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	// File values load first so env vars win on merge.
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	refreshInterval, err := getEnvDurationOrDefault("NEWSRANK_REFRESH_INTERVAL", k.Duration("refresh_interval"), DefaultRefreshInterval)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}

	fetchTimeout, err := getEnvDurationOrDefault("NEWSRANK_FETCH_TIMEOUT", k.Duration("fetch_timeout"), DefaultFetchTimeout)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}

	radiusKm, err := getEnvFloatOrDefault("NEWSRANK_DEFAULT_RADIUS_KM", k.Float64("default_radius_km"), DefaultRadiusKm)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}

	samplingRate, err := getEnvFloatOrDefault("NEWSRANK_TRACING_SAMPLING_RATE", k.Float64("tracing_sampling_rate"), DefaultSamplingRate)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}

	tracingEnabled := k.Bool("tracing_enabled")
	if val := os.Getenv("NEWSRANK_TRACING_ENABLED"); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes", "on":
			tracingEnabled = true
		case "false", "0", "no", "off":
			tracingEnabled = false
		}
	}

	cfg := &Config{
		Env:                 getEnvOrDefault("NEWSRANK_ENV", k.String("env"), DefaultEnv),
		RedisURL:            getEnvOrDefault("NEWSRANK_REDIS_URL", k.String("redis_url"), DefaultRedisURL),
		RegistryKey:         getEnvOrDefault("NEWSRANK_REGISTRY_KEY", k.String("registry_key"), DefaultRegistryKey),
		RefreshInterval:     refreshInterval,
		FetchTimeout:        fetchTimeout,
		CalibrationPath:     getEnvOrKoanf("NEWSRANK_CALIBRATION_PATH", k, "calibration_path"),
		DefaultRadiusKm:     radiusKm,
		TracingEnabled:      tracingEnabled,
		TracingExporter:     getEnvOrKoanf("NEWSRANK_TRACING_EXPORTER", k, "tracing_exporter"),
		TracingSamplingRate: samplingRate,
		OTLPEndpoint:        getEnvOrKoanf("NEWSRANK_OTLP_ENDPOINT", k, "otlp_endpoint"),
	}

	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvDurationOrDefault returns the environment variable as a duration
// if set, otherwise the koanf value, or default. Returns an error if the
// environment variable is set but cannot be parsed as a duration.
func getEnvDurationOrDefault(envKey string, koanfVal time.Duration, defaultVal time.Duration) (time.Duration, error) {
	if val := os.Getenv(envKey); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid duration: %w", envKey, err)
		}
		return d, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// getEnvFloatOrDefault returns the environment variable as float64 if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as a float.
func getEnvFloatOrDefault(envKey string, koanfVal float64, defaultVal float64) (float64, error) {
	if val := os.Getenv(envKey); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid float: %w", envKey, err)
		}
		return f, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// Validate checks that all required configuration values are present
// and within range. Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.RedisURL == "" {
		errs = append(errs, ErrMissingRedisURL)
	}
	if c.RegistryKey == "" {
		errs = append(errs, ErrMissingRegistryKey)
	}
	if c.RefreshInterval <= 0 {
		errs = append(errs, ErrInvalidRefreshInterval)
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, ErrInvalidFetchTimeout)
	}
	if c.DefaultRadiusKm <= 0 {
		errs = append(errs, ErrInvalidRadius)
	}
	if c.TracingSamplingRate < 0 || c.TracingSamplingRate > 1 {
		errs = append(errs, ErrInvalidSamplingRate)
	}

	return errs
}

// LogSummary returns a summary of the configuration suitable for logging.
// Credentials embedded in the redis URL are masked.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"env":                   c.Env,
		"redis_url":             maskRedisURL(c.RedisURL),
		"registry_key":          c.RegistryKey,
		"refresh_interval":      c.RefreshInterval.String(),
		"fetch_timeout":         c.FetchTimeout.String(),
		"calibration_path":      c.CalibrationPath,
		"default_radius_km":     fmt.Sprintf("%g", c.DefaultRadiusKm),
		"tracing_enabled":       fmt.Sprintf("%t", c.TracingEnabled),
		"tracing_exporter":      c.TracingExporter,
		"tracing_sampling_rate": fmt.Sprintf("%g", c.TracingSamplingRate),
		"otlp_endpoint":         c.OTLPEndpoint,
	}
}

// maskRedisURL masks the password in a redis connection URL.
func maskRedisURL(s string) string {
	if s == "" {
		return "<not set>"
	}

	schemeEnd := strings.Index(s, "://")
	if schemeEnd == -1 {
		return s
	}

	rest := s[schemeEnd+3:]
	atIndex := strings.Index(rest, "@")
	if atIndex == -1 {
		return s // No credentials in URL
	}

	colonIndex := strings.Index(rest[:atIndex], ":")
	if colonIndex == -1 {
		return s // No password (only username)
	}

	scheme := s[:schemeEnd+3]
	user := rest[:colonIndex]
	hostAndPath := rest[atIndex:]

	return scheme + user + ":****" + hostAndPath
}

// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DefaultPort      = 8080
	DefaultDBPath    = "data/pacebudget.db"
	DefaultCacheSize = 32
)

type Config struct {
	APIURL          string // Public base URL of the API, required
	Port            int
	DBPath          string
	GinMode         string
	LogFormat       string // "human" or "json". Empty picks by GinMode
	LogLevel        string // Any zerolog level. Empty picks by GinMode
	TuningFile      string // Optional TOML file overriding the insight and badge tuning
	EngineCacheSize int    // Number of periods the engine keeps memoized
}

// LoadEnvFile loads a .env file from the working directory. A missing file
// is not an error, variables that are already set are not overwritten.
func LoadEnvFile(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load returns the configuration from the environment.
func Load() Config {
	return Config{
		APIURL:          os.Getenv("API_URL"),
		Port:            getEnvInt("PORT", DefaultPort),
		DBPath:          getEnv("DB_PATH", DefaultDBPath),
		GinMode:         getEnv("GIN_MODE", "release"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		TuningFile:      os.Getenv("TUNING_FILE"),
		EngineCacheSize: getEnvInt("ENGINE_CACHE_SIZE", DefaultCacheSize),
	}
}

var ErrAPIURLNotSet = errors.New("environment variable API_URL must be set")

// ValidateServer validates the configuration for serving the API, which
// needs the API URL.
func (c Config) ValidateServer() error {
	if c.APIURL == "" {
		return errors.Join(ErrAPIURLNotSet, c.Validate())
	}
	return c.Validate()
}

// Validate returns all problems with the configuration joined in one error.
func (c Config) Validate() error {
	var errs []error

	if c.APIURL != "" {
		if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("API_URL '%s' must be an absolute URL", c.APIURL))
		}
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid LOG_FORMAT '%s': must be human or json", c.LogFormat))
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("invalid LOG_LEVEL '%s'", c.LogLevel))
		}
	}

	if c.EngineCacheSize < 1 {
		errs = append(errs, fmt.Errorf("invalid ENGINE_CACHE_SIZE %d: must be at least 1", c.EngineCacheSize))
	}

	return errors.Join(errs...)
}

// URL returns the parsed API URL. Call Validate first.
func (c Config) URL() *url.URL {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Level returns the log level. Without LOG_LEVEL, it is debug in gin debug
// mode and info otherwise.
func (c Config) Level() zerolog.Level {
	if c.LogLevel != "" {
		if level, err := zerolog.ParseLevel(c.LogLevel); err == nil {
			return level
		}
	}

	if c.GinMode == "debug" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// HumanLogs reports if logs are written for humans instead of as JSON.
func (c Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}
	return c.LogFormat == "human"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// getEnvInt returns fallback if the variable is unset. Values that are not
// numbers are returned as -1 so that Validate reports them.
func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return i
}

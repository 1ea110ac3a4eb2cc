package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	DefaultLogLevel  = "info"
)

var DefaultLanguages = []string{"en", "en-US", "en-GB"}

type Config struct {
	Languages []string
	Timeout   time.Duration
	UserAgent string
	LogFile   string
	LogLevel  string
}

func LoadConfig() *Config {
	return &Config{
		Languages: getEnvAsStringSlice("YT_TRANSCRIPT_LANGUAGES", DefaultLanguages),
		Timeout:   getEnvAsDuration("YT_TRANSCRIPT_TIMEOUT", 0),
		UserAgent: GetEnv("YT_TRANSCRIPT_USER_AGENT", DefaultUserAgent),
		LogFile:   GetEnv("YT_TRANSCRIPT_LOG_FILE", ""),
		LogLevel:  GetEnv("YT_TRANSCRIPT_LOG_LEVEL", DefaultLogLevel),
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

// getEnvAsStringSlice splits a comma separated value, dropping blank entries.
func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Empty list, using default")
		return defaultValue
	}
	return out
}

func ValidateConfig(cfg *Config) error {
	if len(cfg.Languages) == 0 {
		return errors.New("at least one preferred language is required")
	}
	if cfg.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return errors.New("user agent must not be empty")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	return nil
}

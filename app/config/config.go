// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	DatabaseDSN    string `env:"DATABASE_DSN,required,notEmpty"`
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"pgx"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	TranslatorProvider string        `env:"TRANSLATOR_PROVIDER"`
	DeepLAPIKey        string        `env:"DEEPL_API_KEY"`
	DeepLAPIURL        string        `env:"DEEPL_API_URL"`
	GeminiAPIKey       string        `env:"GEMINI_API_KEY"`
	GeminiModel        string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	TranslateTimeout   time.Duration `env:"TRANSLATE_TIMEOUT" envDefault:"5s"`

	CloudinaryURL string `env:"CLOUDINARY_URL"`

	SlugMaxProbes int `env:"SLUG_MAX_PROBES" envDefault:"5000"`
}

// Load reads an optional .env file and then the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be pgx or postgres, got %q", c.DatabaseDriver)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.SlugMaxProbes < 1 {
		return fmt.Errorf("SLUG_MAX_PROBES must be positive, got %d", c.SlugMaxProbes)
	}
	return nil
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	log := logrus.New()
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

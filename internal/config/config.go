// Package config loads console settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ListenAddr      string        `env:"CONSOLE_LISTEN_ADDR,default=:3000"`
	GatewayURL      string        `env:"CONSOLE_GATEWAY_URL,default=http://localhost:8000"`
	RequestTimeout  time.Duration `env:"CONSOLE_REQUEST_TIMEOUT,default=15s"`
	ShutdownTimeout time.Duration `env:"CONSOLE_SHUTDOWN_TIMEOUT,default=5s"`

	Log struct {
		Level  string `env:"CONSOLE_LOG_LEVEL,default=info"`
		Format string `env:"CONSOLE_LOG_FORMAT,default=json"`
	}
}

// Load reads envFiles (missing files are skipped) and then the process
// environment. Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.GatewayURL)
	if err != nil {
		return fmt.Errorf("CONSOLE_GATEWAY_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CONSOLE_GATEWAY_URL: %q is not an absolute http(s) url", c.GatewayURL)
	}
	if c.ListenAddr == "" {
		return errors.New("CONSOLE_LISTEN_ADDR is empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("CONSOLE_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("CONSOLE_LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("CONSOLE_LOG_FORMAT: want json or text, got %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the process logger described by c.
func (c *Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	if strings.ToLower(c.Log.Format) == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}
	return log, nil
}

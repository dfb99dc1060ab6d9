// SPDX-License-Identifier: EPL-2.0

// Package config loads the command line tool's settings from the
// environment.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"

	"github.com/ik5/audregion/region"
)

// Config holds every setting of regionctl.
type Config struct {
	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" validate:"oneof=text json"`
	LogLevel  string `env:"LOG_LEVEL, default=info" validate:"oneof=debug info warn warning error"`

	// Segmentation defaults, used when no region document supplies them
	SilenceThreshold float64 `env:"SILENCE_THRESHOLD, default=0.002"`
	TimeThreshold    float64 `env:"TIME_THRESHOLD, default=0.05"`
	SegLenThreshold  float64 `env:"SEG_LEN_THRESHOLD, default=0.5"`

	// Blob storage: a local directory unless an S3 bucket is configured
	StoreDir           string `env:"STORE_DIR, default=."`
	S3Bucket           string `env:"S3_BUCKET"`
	S3Region           string `env:"S3_REGION" validate:"required_with=S3Bucket"`
	S3Endpoint         string `env:"S3_ENDPOINT" validate:"omitempty,url"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from the environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Params().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// S3Enabled reports whether blobs live in S3.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Params returns the segmentation defaults.
func (c *Config) Params() region.Params {
	return region.Params{
		SilenceThreshold: c.SilenceThreshold,
		TimeThreshold:    c.TimeThreshold,
		SegLenThreshold:  c.SegLenThreshold,
	}
}

// NewLogger creates a structured logger writing to w. "json" selects JSON
// output, anything else text.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// String masks credentials.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{LogFormat: %s, LogLevel: %s, SilenceThreshold: %g, TimeThreshold: %g, SegLenThreshold: %g, StoreDir: %s, S3Bucket: %s, S3Region: %s}",
		c.LogFormat,
		c.LogLevel,
		c.SilenceThreshold,
		c.TimeThreshold,
		c.SegLenThreshold,
		c.StoreDir,
		c.S3Bucket,
		c.S3Region,
	)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

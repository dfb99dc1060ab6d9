// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audregion/region"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ".", cfg.StoreDir)
	assert.Equal(t, region.DefaultParams(), cfg.Params())
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_CustomValues(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"LOG_FORMAT":        "JSON",
		"LOG_LEVEL":         "debug",
		"SILENCE_THRESHOLD": "0.01",
		"TIME_THRESHOLD":    "0.1",
		"SEG_LEN_THRESHOLD": "1.5",
		"S3_BUCKET":         "recordings",
		"S3_REGION":         "eu-west-1",
		"S3_ENDPOINT":       "http://localhost:4566",
	}))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, region.Params{SilenceThreshold: 0.01, TimeThreshold: 0.1, SegLenThreshold: 1.5}, cfg.Params())
	assert.True(t, cfg.S3Enabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"bucket without region", map[string]string{"S3_BUCKET": "recordings"}},
		{"zero time threshold", map[string]string{"TIME_THRESHOLD": "0"}},
		{"not a number", map[string]string{"SEG_LEN_THRESHOLD": "long"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestNewLogger(t *testing.T) {
	out := new(bytes.Buffer)
	cfg := &Config{LogFormat: "json", LogLevel: "warn"}

	logger := cfg.NewLogger(out)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestString_MasksCredentials(t *testing.T) {
	cfg := &Config{AWSAccessKeyID: "AKIA", AWSSecretAccessKey: "secret"}
	assert.NotContains(t, cfg.String(), "secret")
	assert.NotContains(t, cfg.String(), "AKIA")
}

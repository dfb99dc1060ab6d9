// SPDX-License-Identifier: EPL-2.0

// Package main provides regionctl, a batch front end for the region engine.
// Blobs are read from and written to the configured blob store, a local
// directory by default or an S3 bucket when S3_BUCKET is set.
//
// Usage:
//
//	regionctl segment    -in take.mp3 [-verses verses.json] [-out take.regions.json]
//	regionctl export     -in take.mp3 [-format pcm16|float32] [-out take.pcm16.wav]
//	regionctl split      -in take.mp3 [-regions take.regions.json] [-prefix take]
//	regionctl delete     -in take.wav -regions take.regions.json -region 2 [-out ...]
//	regionctl transcribe -in take.mp3 [-out take.16k.wav]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audregion/internal/blobstore"
	"github.com/ik5/audregion/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: regionctl <segment|export|split|delete|transcribe> [flags]")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}

	// Load configuration from environment
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := cfg.NewLogger(stderr)
	slog.SetDefault(logger)

	logger.Debug("starting regionctl",
		slog.String("command", args[0]),
		slog.String("log_level", cfg.LogLevel),
		slog.String("store_dir", cfg.StoreDir),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
	)

	store, err := blobstore.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	a := &app{
		log:    logger,
		store:  store,
		params: cfg.Params(),
		stdout: stdout,
	}

	return cmd(ctx, a, args[1:])
}

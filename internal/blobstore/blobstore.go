// SPDX-License-Identifier: EPL-2.0

// Package blobstore keeps media blobs and region documents either in a
// local directory or in an S3 bucket.
package blobstore

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/ik5/audregion/internal/config"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("blob not found")

// ErrInvalidKey is returned for keys that escape the store root.
var ErrInvalidKey = errors.New("invalid blob key")

// Store reads and writes whole blobs by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Open returns the S3 store when a bucket is configured and the local
// directory store otherwise.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.S3Enabled() {
		return NewS3(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
	}

	return NewLocal(cfg.StoreDir)
}

// cleanKey normalizes key to a slash separated relative path. Parent
// references are rejected.
func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}

	k := strings.TrimPrefix(path.Clean("/"+key), "/")
	if k == "" {
		return "", ErrInvalidKey
	}

	return k, nil
}

// contentType guesses the MIME type from the key extension.
func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".wav":
		return "audio/wav"
	case ".json":
		return "application/json"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg":
		return "audio/ogg"
	case ".aif", ".aiff":
		return "audio/aiff"
	default:
		return "application/octet-stream"
	}
}

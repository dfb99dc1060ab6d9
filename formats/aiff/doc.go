// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files with 8, 16,
// 24 or 32-bit integer samples. The decoder needs an io.ReadSeeker; other
// readers are buffered in memory first.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
package aiff

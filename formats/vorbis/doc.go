// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Channel count and sample rate come from the stream header.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
package vorbis

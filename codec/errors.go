// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	// ErrDecodeFailure wraps every error of Decode: a malformed or
	// unsupported blob.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrUnknownFormat is returned when no registered decoder recognizes
	// the blob.
	ErrUnknownFormat = errors.New("unrecognized audio format")

	// ErrEmptyBuffer is returned when there is no buffer to encode.
	ErrEmptyBuffer = errors.New("no audio to encode")

	// ErrInvalidRange is returned by EncodeRange for an empty interval.
	ErrInvalidRange = errors.New("invalid encode range")
)

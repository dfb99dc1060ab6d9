// SPDX-License-Identifier: EPL-2.0

// Package codec adapts encoded audio blobs to sample buffers.
//
// Decode detects the container from its magic bytes and picks a decoder
// from the registry:
//
//	c := codec.New()
//	buf, err := c.Decode(ctx, blob)
//	if errors.Is(err, codec.ErrDecodeFailure) {
//		// keep the previous buffer
//	}
//
// Encoding always produces a canonical WAV; see formats/wav.
package codec

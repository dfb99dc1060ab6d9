// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrInvalidDstSize is returned by ReadSamples for a destination that
	// does not hold whole frames.
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// Buffer invariants, checked by SampleBuffer.Validate and ReadAll.
	ErrNoChannels         = errors.New("source has no channels")
	ErrInvalidSampleRate  = errors.New("sample rate must be positive")
	ErrChannelLenMismatch = errors.New("channel lengths differ")
)

// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/formats/aiff"
	"github.com/ik5/audregion/formats/mp3"
	"github.com/ik5/audregion/formats/vorbis"
	"github.com/ik5/audregion/formats/wav"
	"github.com/ik5/audregion/utils"
)

// NewRegistry returns a registry holding every bundled decoder under its
// Sniff key.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(FormatWAV, wav.Decoder{})
	reg.Register(FormatAIFF, aiff.Decoder{})
	reg.Register(FormatVorbis, vorbis.Decoder{})
	reg.Register(FormatMP3, mp3.Decoder{})

	return reg
}

// Codec turns blobs into sample buffers and back.
type Codec struct {
	registry *audio.Registry
}

// New returns a Codec over the bundled decoders.
func New() *Codec {
	return &Codec{registry: NewRegistry()}
}

// NewWithRegistry returns a Codec over a caller supplied registry.
func NewWithRegistry(reg *audio.Registry) *Codec {
	return &Codec{registry: reg}
}

// DecodeResult is delivered by DecodeAsync.
type DecodeResult struct {
	Buffer *audio.SampleBuffer
	Err    error
}

// Decode sniffs blob, runs the matching decoder and drains it into a
// buffer. Every failure wraps ErrDecodeFailure.
func (c *Codec) Decode(ctx context.Context, blob []byte) (*audio.SampleBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}

	format := Sniff(blob)
	dec, ok := c.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, ErrUnknownFormat)
	}

	src, err := dec.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, format, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, format, err)
	}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, format, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}

	return buf, nil
}

// DecodeAsync runs Decode on its own goroutine. The channel yields exactly
// one result and is then closed.
func (c *Codec) DecodeAsync(ctx context.Context, blob []byte) <-chan DecodeResult {
	out := make(chan DecodeResult, 1)

	go func() {
		defer close(out)

		buf, err := c.Decode(ctx, blob)
		out <- DecodeResult{Buffer: buf, Err: err}
	}()

	return out
}

// Encode serializes buf as a WAV blob. A nil buffer, or one without a
// sample rate, yields ErrEmptyBuffer.
func Encode(buf *audio.SampleBuffer, format wav.Format) ([]byte, error) {
	if buf == nil || buf.SampleRate <= 0 {
		return nil, ErrEmptyBuffer
	}

	return wav.EncodeBytes(buf, format)
}

// EncodeRange serializes the [start, end) seconds of buf, using the same
// boundary snapping as the editor.
func EncodeRange(buf *audio.SampleBuffer, start, end float64, format wav.Format) ([]byte, error) {
	if buf == nil || buf.SampleRate <= 0 {
		return nil, ErrEmptyBuffer
	}

	lo := utils.SecondsToFrame(start, buf.SampleRate)
	hi := utils.SecondsToFrame(end, buf.SampleRate)
	if hi <= lo || lo >= buf.FrameCount() {
		return nil, fmt.Errorf("%w: [%g, %g)", ErrInvalidRange, start, end)
	}

	return wav.EncodeBytes(buf.Slice(lo, hi), format)
}

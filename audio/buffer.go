// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// SampleBuffer is a fully decoded, de-interleaved PCM buffer.
//
// Every channel slice has the same length, the frame count. Edits never
// mutate a SampleBuffer in place; they build a new one.
type SampleBuffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewSampleBuffer allocates a zeroed buffer of frames frames per channel.
func NewSampleBuffer(sampleRate, channels, frames int) *SampleBuffer {
	b := &SampleBuffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for c := range b.Channels {
		b.Channels[c] = make([]float32, frames)
	}

	return b
}

// NumChannels returns the channel count. A nil buffer has none.
func (b *SampleBuffer) NumChannels() int {
	if b == nil {
		return 0
	}
	return len(b.Channels)
}

// FrameCount returns the number of samples per channel.
func (b *SampleBuffer) FrameCount() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration in seconds.
func (b *SampleBuffer) Duration() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return float64(b.FrameCount()) / float64(b.SampleRate)
}

// Empty reports whether the buffer holds no frames.
func (b *SampleBuffer) Empty() bool {
	return b.FrameCount() == 0
}

// Validate checks the equal-length channel invariant.
func (b *SampleBuffer) Validate() error {
	if b.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if len(b.Channels) == 0 {
		return ErrNoChannels
	}

	n := len(b.Channels[0])
	for c, ch := range b.Channels {
		if len(ch) != n {
			return fmt.Errorf("channel %d has %d frames, want %d: %w", c, len(ch), n, ErrChannelLenMismatch)
		}
	}

	return nil
}

// Clone returns a deep copy.
func (b *SampleBuffer) Clone() *SampleBuffer {
	if b == nil {
		return nil
	}

	out := &SampleBuffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float32, len(b.Channels)),
	}
	for c, ch := range b.Channels {
		out.Channels[c] = append([]float32(nil), ch...)
	}

	return out
}

// Slice copies frames [from, to) into a new buffer. Bounds are clamped.
func (b *SampleBuffer) Slice(from, to int) *SampleBuffer {
	n := b.FrameCount()
	from = max(0, min(from, n))
	to = max(from, min(to, n))

	out := NewSampleBuffer(b.SampleRate, b.NumChannels(), to-from)
	for c, ch := range b.Channels {
		copy(out.Channels[c], ch[from:to])
	}

	return out
}

// Channel returns channel c, or channel 0 when c is out of range. This is
// the broadcast rule used whenever channel counts disagree.
func (b *SampleBuffer) Channel(c int) []float32 {
	if c < len(b.Channels) {
		return b.Channels[c]
	}
	return b.Channels[0]
}

// Interleave flattens the buffer frame by frame.
func (b *SampleBuffer) Interleave() []float32 {
	channels := b.NumChannels()
	frames := b.FrameCount()
	out := make([]float32, frames*channels)

	for f := range frames {
		base := f * channels
		for c := range channels {
			out[base+c] = b.Channels[c][f]
		}
	}

	return out
}

// Deinterleave splits interleaved samples into a SampleBuffer. A trailing
// partial frame is dropped.
func Deinterleave(sampleRate, channels int, data []float32) *SampleBuffer {
	if channels <= 0 {
		return &SampleBuffer{SampleRate: sampleRate}
	}

	frames := len(data) / channels
	out := NewSampleBuffer(sampleRate, channels, frames)

	// Unrolled for the common stereo case
	if channels == 2 {
		left, right := out.Channels[0], out.Channels[1]
		for f := range frames {
			idx := f << 1
			left[f] = data[idx]
			right[f] = data[idx+1]
		}
		return out
	}

	for f := range frames {
		base := f * channels
		for c := range channels {
			out.Channels[c][f] = data[base+c]
		}
	}

	return out
}

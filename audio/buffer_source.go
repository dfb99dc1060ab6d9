// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// BufferSource streams an in-memory SampleBuffer as interleaved samples.
type BufferSource struct {
	buf *SampleBuffer
	pos int // next frame
}

func NewBufferSource(buf *SampleBuffer) *BufferSource {
	return &BufferSource{buf: buf}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.NumChannels() }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.NumChannels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.FrameCount() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		base := f * channels
		for c := range channels {
			dst[base+c] = s.buf.Channels[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.FrameCount() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}

// ReadAll drains src into a SampleBuffer. It does not close src.
func ReadAll(src Source) (*SampleBuffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}

	size := max(src.BufSize(), 4096)
	size -= size % channels

	buf := make([]float32, size)
	data := make([]float32, 0, size)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			// A source that keeps returning nothing without EOF is finished
			// for our purposes.
			break
		}
	}

	return Deinterleave(src.SampleRate(), channels, data), nil
}

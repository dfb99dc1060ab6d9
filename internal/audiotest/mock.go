// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds deterministic sample buffers and WAV blobs for tests.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/ik5/audregion/audio"
)

// Generate builds a buffer of the given length whose samples come from waveform.
func Generate(sampleRate, channels int, seconds float64, waveform func(sample int, channel int) float32) *audio.SampleBuffer {
	frames := int(math.Round(seconds * float64(sampleRate)))
	buf := audio.NewSampleBuffer(sampleRate, channels, frames)

	for c := range channels {
		for f := range frames {
			buf.Channels[c][f] = waveform(f, c)
		}
	}

	return buf
}

// Silence generates all zeros.
func Silence(sampleRate, channels int, seconds float64) *audio.SampleBuffer {
	return Generate(sampleRate, channels, seconds, func(int, int) float32 { return 0 })
}

// Sine generates a sine wave of frequency Hz on every channel.
func Sine(sampleRate, channels int, seconds, frequency float64) *audio.SampleBuffer {
	return Generate(sampleRate, channels, seconds, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// Constant generates a constant value on every channel.
func Constant(sampleRate, channels int, seconds float64, value float32) *audio.SampleBuffer {
	return Generate(sampleRate, channels, seconds, func(int, int) float32 { return value })
}

// Ramp generates sample i of channel c as (i mod 1000)/1000 + c/100, which
// makes spliced positions easy to identify.
func Ramp(sampleRate, channels int, seconds float64) *audio.SampleBuffer {
	return Generate(sampleRate, channels, seconds, func(sample int, channel int) float32 {
		return float32(sample%1000)/1000 + float32(channel)/100
	})
}

// Bursts generates silence with loud spans. Each span is {start, end} in
// seconds; samples inside a span alternate between +amplitude and -amplitude.
func Bursts(sampleRate int, seconds float64, amplitude float32, spans ...[2]float64) *audio.SampleBuffer {
	return Generate(sampleRate, 1, seconds, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		for _, s := range spans {
			if t >= s[0] && t < s[1] {
				if sample%2 == 0 {
					return amplitude
				}
				return -amplitude
			}
		}
		return 0
	})
}

// WAV16 encodes buf as a canonical 44-byte header PCM16 WAV, independently
// of the production encoder.
func WAV16(buf *audio.SampleBuffer) []byte {
	out := new(bytes.Buffer)

	channels := buf.NumChannels()
	frames := buf.FrameCount()
	dataSize := uint32(frames * channels * 2)

	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, 36+dataSize)
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	binary.Write(out, binary.LittleEndian, uint32(16))
	binary.Write(out, binary.LittleEndian, uint16(1))
	binary.Write(out, binary.LittleEndian, uint16(channels))
	binary.Write(out, binary.LittleEndian, uint32(buf.SampleRate))
	binary.Write(out, binary.LittleEndian, uint32(buf.SampleRate*channels*2))
	binary.Write(out, binary.LittleEndian, uint16(channels*2))
	binary.Write(out, binary.LittleEndian, uint16(16))

	out.WriteString("data")
	binary.Write(out, binary.LittleEndian, dataSize)

	for f := range frames {
		for c := range channels {
			x := max(-1, min(1, buf.Channels[c][f]))
			binary.Write(out, binary.LittleEndian, int16(x*32767))
		}
	}

	return out.Bytes()
}

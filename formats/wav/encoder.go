// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/utils"
)

// Format selects the sample encoding of written files.
type Format int

const (
	// PCM16 writes 16-bit signed integers (AudioFormat 1).
	PCM16 Format = iota
	// Float32 writes 32-bit IEEE floats (AudioFormat 3).
	Float32
)

func (f Format) String() string {
	switch f {
	case PCM16:
		return "pcm16"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func (f Format) audioFormat() uint16 {
	if f == Float32 {
		return formatFloat
	}
	return formatPCM
}

func (f Format) bytesPerSample() int {
	if f == Float32 {
		return 4
	}
	return 2
}

// HeaderSize is the size of the canonical header every writer emits.
const HeaderSize = 44

// header builds the 44-byte canonical header.
func header(format Format, channels, sampleRate, frames int) []byte {
	bytesPerSample := format.bytesPerSample()
	blockAlign := uint16(channels * bytesPerSample)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(frames) * uint32(blockAlign)

	h := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], format.audioFormat())
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], uint16(bytesPerSample*8))

	// data chunk header (8 bytes)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

// Encode writes buf as a WAV file. Channels are interleaved frame by frame;
// PCM16 clamps samples to [-1, 1] before scaling.
func Encode(w io.Writer, buf *audio.SampleBuffer, format Format) error {
	if buf == nil {
		return ErrNilBuffer
	}
	channels := buf.NumChannels()
	if channels > math.MaxUint16 {
		return ErrTooManyChannels
	}
	frames := buf.FrameCount()

	if _, err := w.Write(header(format, channels, buf.SampleRate, frames)); err != nil {
		return fmt.Errorf("%w", err)
	}

	if frames == 0 {
		return nil
	}

	// Write in chunks of whole frames
	const chunkFrames = 4096
	frameBytes := channels * format.bytesPerSample()
	out := make([]byte, min(frames, chunkFrames)*frameBytes)

	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		chunk := out[:(end-start)*frameBytes]

		i := 0
		for f := start; f < end; f++ {
			for c := range channels {
				x := buf.Channels[c][f]
				if format == Float32 {
					binary.LittleEndian.PutUint32(chunk[i:i+4], math.Float32bits(x))
					i += 4
					continue
				}
				binary.LittleEndian.PutUint16(chunk[i:i+2], uint16(utils.Float32ToInt16(x)))
				i += 2
			}
		}

		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// EncodeBytes is Encode into memory.
func EncodeBytes(buf *audio.SampleBuffer, format Format) ([]byte, error) {
	out := bytes.NewBuffer(make([]byte, 0, HeaderSize+buf.FrameCount()*buf.NumChannels()*format.bytesPerSample()))
	if err := Encode(out, buf, format); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate. samples must be int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if _, err := w.Write(header(PCM16, 1, sampleRate, len(samples))); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:i*2+2], uint16(s))
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

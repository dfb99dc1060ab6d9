// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audregion/audio"
)

// pcmReader is an interface for gowav.Decoder to allow testing
type pcmReader interface {
	IsValidFile() bool
	FullPCMBuffer() (*goaudio.IntBuffer, error)
}

// Decoder reads whole WAV files. Integer PCM of any bit depth goes through
// go-audio/wav; 32-bit IEEE float data is read directly.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	fc, pcm, err := layout(data)
	if err != nil {
		return nil, err
	}

	if fc.channels <= 0 || fc.sampleRate <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	var buf *audio.SampleBuffer
	switch fc.audioFormat {
	case formatFloat:
		buf, err = decodeFloat(fc, pcm)
	case formatPCM:
		buf, err = decodePCM(gowav.NewDecoder(bytes.NewReader(data)), fc, pcm)
	default:
		return nil, fmt.Errorf("audio format %d: %w", fc.audioFormat, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	return audio.NewBufferSource(buf), nil
}

func decodeFloat(fc fmtChunk, pcm []byte) (*audio.SampleBuffer, error) {
	if fc.bitsPerSample != 32 {
		return nil, fmt.Errorf("%d-bit float: %w", fc.bitsPerSample, ErrUnsupportedFormat)
	}

	samples := make([]float32, len(pcm)/4)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(pcm[4*i : 4*i+4]))
	}

	return audio.Deinterleave(fc.sampleRate, fc.channels, samples), nil
}

func decodePCM(dec pcmReader, fc fmtChunk, pcm []byte) (*audio.SampleBuffer, error) {
	var scale float32
	offset := 0
	switch fc.bitsPerSample {
	case 8:
		// 8-bit WAV is unsigned
		scale, offset = 128.0, 128
	case 16:
		scale = 32768.0
	case 24:
		scale = 8388608.0
	case 32:
		scale = 2147483648.0
	default:
		return nil, fmt.Errorf("%d-bit PCM: %w", fc.bitsPerSample, ErrUnsupportedFormat)
	}

	// go-audio rejects files without a positive duration
	if len(pcm) == 0 {
		return audio.NewSampleBuffer(fc.sampleRate, fc.channels, 0), nil
	}

	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	intBuf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding pcm: %w", err)
	}

	samples := make([]float32, len(intBuf.Data))
	for i, v := range intBuf.Data {
		samples[i] = float32(v-offset) / scale
	}

	return audio.Deinterleave(fc.sampleRate, fc.channels, samples), nil
}

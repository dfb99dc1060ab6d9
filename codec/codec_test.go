// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/formats/wav"
	"github.com/ik5/audregion/internal/audiotest"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want string
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), FormatWAV},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFFCOMM"), FormatAIFF},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFCCOMM"), FormatAIFF},
		{"ogg", []byte("OggS\x00\x02"), FormatVorbis},
		{"id3", []byte("ID3\x04\x00"), FormatMP3},
		{"mpeg sync", []byte{0xFF, 0xFB, 0x90, 0x00}, FormatMP3},
		{"riff but not wave", []byte("RIFF\x00\x00\x00\x00AVI LIST"), ""},
		{"empty", nil, ""},
		{"text", []byte("hello world"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sniff(tt.blob))
		})
	}
}

func TestNewRegistry(t *testing.T) {
	assert.Equal(t, []string{FormatAIFF, FormatMP3, FormatVorbis, FormatWAV}, NewRegistry().Formats())
}

func TestDecode_WAV(t *testing.T) {
	src := audiotest.Sine(8000, 2, 0.5, 440)

	buf, err := New().Decode(context.Background(), audiotest.WAV16(src))
	require.NoError(t, err)

	assert.Equal(t, 8000, buf.SampleRate)
	assert.Equal(t, 2, buf.NumChannels())
	assert.Equal(t, src.FrameCount(), buf.FrameCount())
	for f := 0; f < src.FrameCount(); f += 97 {
		assert.InDelta(t, src.Channels[1][f], buf.Channels[1][f], 2.0/32768)
	}
}

func TestDecode_Failures(t *testing.T) {
	c := New()

	_, err := c.Decode(context.Background(), []byte("not audio at all"))
	assert.ErrorIs(t, err, ErrDecodeFailure)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	truncated := []byte("RIFF\x10\x00\x00\x00WAVE")
	_, err = c.Decode(context.Background(), truncated)
	assert.ErrorIs(t, err, ErrDecodeFailure)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Decode(ctx, audiotest.WAV16(audiotest.Silence(8000, 1, 0.1)))
	assert.ErrorIs(t, err, ErrDecodeFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeAsync(t *testing.T) {
	blob := audiotest.WAV16(audiotest.Constant(16000, 1, 0.25, 0.5))

	results := New().DecodeAsync(context.Background(), blob)

	res, ok := <-results
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, 4000, res.Buffer.FrameCount())

	_, ok = <-results
	assert.False(t, ok, "channel is closed after the result")
}

func TestEncode_RoundTrip(t *testing.T) {
	src := audiotest.Sine(22050, 2, 0.2, 330)
	c := New()

	t.Run("pcm16 within quantization", func(t *testing.T) {
		blob, err := Encode(src, wav.PCM16)
		require.NoError(t, err)

		buf, err := c.Decode(context.Background(), blob)
		require.NoError(t, err)
		require.Equal(t, src.FrameCount(), buf.FrameCount())

		for ch := range src.Channels {
			for f := range src.Channels[ch] {
				require.InDelta(t, src.Channels[ch][f], buf.Channels[ch][f], 2.1/32768)
			}
		}
	})

	t.Run("float exact", func(t *testing.T) {
		blob, err := Encode(src, wav.Float32)
		require.NoError(t, err)

		buf, err := c.Decode(context.Background(), blob)
		require.NoError(t, err)
		assert.Equal(t, src.Channels, buf.Channels)
	})
}

func TestEncode_TwoFrameStereo(t *testing.T) {
	buf := &audio.SampleBuffer{SampleRate: 44100, Channels: [][]float32{{0.5, -0.5}, {0.25, 1.5}}}

	blob, err := Encode(buf, wav.PCM16)
	require.NoError(t, err)

	require.Len(t, blob, 52)
	assert.Equal(t, uint32(44), binary.LittleEndian.Uint32(blob[4:8]))
	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(blob[40:44]))
}

func TestEncodeRange(t *testing.T) {
	buf := audiotest.Ramp(8000, 1, 4)

	blob, err := EncodeRange(buf, 1, 2.5, wav.Float32)
	require.NoError(t, err)

	region, err := New().Decode(context.Background(), blob)
	require.NoError(t, err)
	assert.Equal(t, 12000, region.FrameCount())
	assert.Equal(t, buf.Channels[0][8000], region.Channels[0][0])

	_, err = EncodeRange(buf, 2, 2, wav.PCM16)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = EncodeRange(buf, 5, 6, wav.PCM16)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestEncode_NoBuffer(t *testing.T) {
	_, err := Encode(nil, wav.PCM16)
	assert.ErrorIs(t, err, ErrEmptyBuffer)

	_, err = EncodeRange(nil, 0, 1, wav.PCM16)
	assert.ErrorIs(t, err, ErrEmptyBuffer)

	_, err = Encode(&audio.SampleBuffer{}, wav.Float32)
	assert.ErrorIs(t, err, ErrEmptyBuffer)
}

func TestTranscriptionPCM(t *testing.T) {
	buf := audiotest.Constant(44100, 2, 1, 0.5)

	pcm := TranscriptionPCM(buf, TranscriptionRate)
	assert.Len(t, pcm, TranscriptionRate)
	assert.InDelta(t, 16383, pcm[len(pcm)/2], 2)

	assert.Nil(t, TranscriptionPCM(audio.NewSampleBuffer(8000, 1, 0), TranscriptionRate))
}

func TestWriteTranscription(t *testing.T) {
	out := new(bytes.Buffer)
	require.NoError(t, WriteTranscription(out, audiotest.Sine(8000, 2, 0.5, 200)))

	assert.Equal(t, wav.HeaderSize+TranscriptionRate/2*2, out.Len())
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out.Bytes()[22:24]), "mono")
}

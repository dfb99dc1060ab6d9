// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Integer PCM (8, 16, 24 and 32-bit) is decoded with the github.com/go-audio/wav
// library; 32-bit IEEE float data is read directly from the data chunk.
// Unknown RIFF chunks before the data chunk are skipped.
//
// # Decoding WAV Files
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf, err := audio.ReadAll(src)
//
// # Writing WAV Files
//
// Encode writes any SampleBuffer with the canonical 44-byte header, as PCM16
// or Float32:
//
//	err := wav.Encode(file, buf, wav.PCM16)
//
// PCM16 clamps samples to [-1, 1] and scales them to ±32767. Channels are
// interleaved frame by frame. WriteWAV16 remains for callers that already hold
// mono int16 samples.
//
// # Error Handling
//
// The package defines several errors:
//   - ErrNotWavFile: The input is not a RIFF/WAVE file
//   - ErrUnsupportedFormat: A sample format or bit depth that is not handled
//   - ErrUnsupportedWavLayout: Missing or malformed fmt chunk
//   - ErrUnsupportedWavChunks: No data chunk
//
// # File Format
//
// Written files consist of:
//   - RIFF header (12 bytes), size field = 36 + data bytes
//   - fmt chunk (24 bytes): audio format, channels, sample rate, byte rate, block align, bit depth
//   - data chunk: 8-byte header followed by numFrames × BlockAlign bytes
package wav

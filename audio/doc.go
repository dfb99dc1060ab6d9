// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level audio primitives the region engine
// is built on.
//
// This package contains:
//   - SampleBuffer, the decoded de-interleaved PCM buffer every edit works on
//   - Source interface for streaming decoder output
//   - BufferSource and ReadAll to move between the two representations
//   - Resample for sample rate conversion
//   - MixToMono for channel mixing
//   - Format registry for decoder registration
//
// # Sample Buffers
//
// A SampleBuffer holds one float32 slice per channel, all of equal length:
//
//	buf := audio.NewSampleBuffer(44100, 2, 44100) // one second of stereo silence
//	fmt.Println(buf.Duration())                   // 1
//
// Buffers are treated as immutable values. Operations that change audio
// return a new buffer and leave their input untouched, which is what makes
// one-level undo a matter of keeping the previous pointer.
//
// # Source Interface
//
// Format decoders stream interleaved samples through Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadAll drains any Source into a SampleBuffer:
//
//	src, _ := wav.Decoder{}.Decode(r)
//	buf, err := audio.ReadAll(src)
//
// # Resampling
//
// Resample changes the sample rate using cubic interpolation, with a simple
// low-pass filter when downsampling:
//
//	out := audio.Resample(buf, 16000)
//
// # Channel Mixing
//
// MixToMono converts multi-channel audio to mono by averaging:
//
//	mono := audio.MixToMono(buf)
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
package audio

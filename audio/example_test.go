// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/audregion/audio"
	"github.com/ik5/audregion/internal/audiotest"
)

// Example_resample demonstrates converting a buffer to another sample rate.
func Example_resample() {
	buf := audiotest.Sine(44100, 1, 1.0, 440.0)

	out := audio.Resample(buf, 16000)

	fmt.Printf("Output sample rate: %d Hz\n", out.SampleRate)
	fmt.Printf("Frames: %d\n", out.FrameCount())
	// Output:
	// Output sample rate: 16000 Hz
	// Frames: 16000
}

// Example_readAll shows how a streaming source becomes a SampleBuffer.
func Example_readAll() {
	stereo := audiotest.Sine(16000, 2, 0.5, 440.0)

	buf, err := audio.ReadAll(audio.NewBufferSource(stereo))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	mono := audio.MixToMono(buf)

	fmt.Printf("Input channels: %d\n", buf.NumChannels())
	fmt.Printf("Output channels: %d\n", mono.NumChannels())
	fmt.Printf("Duration: %.1fs\n", mono.Duration())
	// Output:
	// Input channels: 2
	// Output channels: 1
	// Duration: 0.5s
}

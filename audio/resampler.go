// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/audregion/utils"

// Resample converts buf to dstRate using cubic interpolation, channel by
// channel. Includes basic anti-aliasing filtering when downsampling.
// The source buffer is never modified.
func Resample(buf *SampleBuffer, dstRate int) *SampleBuffer {
	if buf == nil || dstRate <= 0 || buf.SampleRate <= 0 || buf.SampleRate == dstRate {
		return buf.Clone()
	}

	// how many source samples per output sample
	ratio := float64(buf.SampleRate) / float64(dstRate)
	frames := buf.FrameCount()
	outFrames := int(int64(frames) * int64(dstRate) / int64(buf.SampleRate))

	out := NewSampleBuffer(dstRate, buf.NumChannels(), outFrames)
	for c, ch := range buf.Channels {
		src := ch
		if ratio > 1.0 {
			src = lowPass(ch, 0.5)
		}
		resampleChannel(src, out.Channels[c], ratio)
	}

	return out
}

func resampleChannel(src, dst []float32, ratio float64) {
	if len(src) == 0 {
		return
	}

	for i := range dst {
		dst[i] = utils.CubicAt(src, float64(i)*ratio)
	}
}

// lowPass is a one-pole filter: y[n] = alpha * x[n] + (1-alpha) * y[n-1].
// State starts at the first sample to avoid warm-up transients.
func lowPass(src []float32, alpha float32) []float32 {
	out := make([]float32, len(src))
	if len(src) == 0 {
		return out
	}

	state := src[0]
	for i, x := range src {
		state = alpha*x + (1-alpha)*state
		out[i] = state
	}

	return out
}

// SPDX-License-Identifier: EPL-2.0

package audio

// MixToMono averages all channels into a single channel buffer.
func MixToMono(buf *SampleBuffer) *SampleBuffer {
	channels := buf.NumChannels()
	if channels <= 1 {
		return buf.Clone()
	}

	frames := buf.FrameCount()
	out := NewSampleBuffer(buf.SampleRate, 1, frames)
	dst := out.Channels[0]

	switch channels {
	case 2: // Stereo (most common)
		left, right := buf.Channels[0], buf.Channels[1]
		for f := range frames {
			dst[f] = (left[f] + right[f]) * 0.5
		}
	default:
		invChannels := float32(1.0) / float32(channels)
		for f := range frames {
			sum := float32(0)
			for c := range channels {
				sum += buf.Channels[c][f]
			}
			dst[f] = sum * invChannels
		}
	}

	return out
}

// SPDX-License-Identifier: EPL-2.0

package segment

import (
	"math"

	"github.com/ik5/audregion/audio"
)

// Peak array length bounds.
const (
	MinPeaks = 512
	MaxPeaks = 512 * 16
)

// PeakCount returns the peak array length for a buffer of duration seconds:
// one peak per timeThreshold, clamped to [MinPeaks, MaxPeaks].
func PeakCount(duration, timeThreshold float64) int {
	if duration <= 0 {
		return 0
	}
	if timeThreshold <= 0 {
		return MaxPeaks
	}

	// epsilon keeps 28/0.05 from flooring to 559
	n := duration/timeThreshold + 1e-9
	if n > MaxPeaks {
		return MaxPeaks
	}

	return max(int(n), MinPeaks)
}

// Peaks downsamples buf into length peaks. Peak k is the largest absolute
// sample, across all channels, of the k-th equal block of frames. A buffer
// with fewer frames than length yields one peak per frame.
func Peaks(buf *audio.SampleBuffer, length int) []float64 {
	frames := buf.FrameCount()
	if frames == 0 || length <= 0 {
		return nil
	}
	length = min(length, frames)

	peaks := make([]float64, length)
	for k := range peaks {
		lo := int(int64(k) * int64(frames) / int64(length))
		hi := int(int64(k+1) * int64(frames) / int64(length))

		var peak float32
		for _, ch := range buf.Channels {
			for _, x := range ch[lo:hi] {
				if x < 0 {
					x = -x
				}
				if x > peak {
					peak = x
				}
			}
		}
		peaks[k] = float64(peak)
	}

	return peaks
}

// PeakCache memoizes the peak array of one buffer. A session owns one and
// invalidates it whenever the buffer is replaced.
type PeakCache struct {
	buf    *audio.SampleBuffer
	length int
	peaks  []float64
}

// Peaks returns the peaks of buf, computing them only when buf or length
// changed since the previous call.
func (c *PeakCache) Peaks(buf *audio.SampleBuffer, length int) []float64 {
	if c == nil {
		return Peaks(buf, length)
	}
	if c.peaks != nil && c.buf == buf && c.length == length {
		return c.peaks
	}

	c.buf, c.length = buf, length
	c.peaks = Peaks(buf, length)

	return c.peaks
}

// Invalidate drops the cached peaks.
func (c *PeakCache) Invalidate() {
	c.buf, c.length, c.peaks = nil, 0, nil
}

// minSilence returns the shortest silence cluster, in peaks, that counts.
func minSilence(timeThreshold, secondsPerPeak float64) int {
	if secondsPerPeak <= 0 {
		return 1
	}

	return max(int(math.Ceil(timeThreshold/secondsPerPeak-1e-9)), 1)
}

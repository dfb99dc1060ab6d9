// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to ±32767. The scale
// is symmetric so full-scale positive input cannot overflow.
func Float32ToInt16(x float32) int16 {
	x = max(-1, min(x, 1))

	return int16(x * 32767.0)
}

// Int16ToFloat32 is the decode direction used by every PCM16 reader.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// PCM16 converts a run of float samples to int16, allocating the result.
func PCM16(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, x := range samples {
		out[i] = Float32ToInt16(x)
	}

	return out
}

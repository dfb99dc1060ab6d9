// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// frameEpsilon absorbs float error in products like 9.97*44100 before
// flooring, so a boundary that is exactly on a frame does not land one
// frame early.
const frameEpsilon = 1e-7

// RoundTo rounds x to the given number of decimal places.
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// SnapMillis rounds a time in seconds to 3 decimal places.
func SnapMillis(seconds float64) float64 {
	return RoundTo(seconds, 3)
}

// SecondsToFrame converts a time boundary to a frame index. The time is
// snapped to milliseconds first and the product is truncated.
func SecondsToFrame(seconds float64, sampleRate int) int {
	if seconds <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(math.Floor(SnapMillis(seconds)*float64(sampleRate) + frameEpsilon))
}

// FrameToSeconds is the inverse of SecondsToFrame, without snapping.
func FrameToSeconds(frame, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(frame) / float64(sampleRate)
}

// NearlyEqual reports whether a and b are within eps of each other.
func NearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

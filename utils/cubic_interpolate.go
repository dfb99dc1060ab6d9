// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x,
// the fractional position between y1 (x=0) and y2 (x=1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}

// CubicAt samples src at the fractional frame position pos. Neighbours
// outside src repeat the edge frame. An empty src yields 0.
func CubicAt(src []float32, pos float64) float32 {
	last := len(src) - 1
	if last < 0 {
		return 0
	}

	at := func(i int) float32 {
		return src[max(0, min(i, last))]
	}

	idx := int(pos)
	x := float32(pos - float64(idx))

	return CubicInterpolate(at(idx-1), at(idx), at(idx+1), at(idx+2), x)
}

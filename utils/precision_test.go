// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestRoundTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		x      float64
		places int
		want   float64
	}{
		{"five places", 1.2345678, 5, 1.23457},
		{"three places", 9.9699999, 3, 9.97},
		{"negative", -0.12345, 3, -0.123},
		{"integer", 28, 5, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RoundTo(tt.x, tt.places); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.x, tt.places, got, tt.want)
			}
		})
	}
}

func TestSecondsToFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds float64
		rate    int
		want    int
	}{
		{"zero", 0, 44100, 0},
		{"negative clamps", -1, 44100, 0},
		{"whole second", 1, 44100, 44100},
		{"millisecond boundary", 9.97, 44100, 439677},
		{"snaps drift", 0.1 + 0.2, 1000, 300},
		{"sub-millisecond snaps to zero", 0.0004, 44100, 0},
		{"truncates fractional frame", 0.001, 22050, 22},
		{"no rate", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SecondsToFrame(tt.seconds, tt.rate); got != tt.want {
				t.Errorf("SecondsToFrame(%v, %d) = %d, want %d", tt.seconds, tt.rate, got, tt.want)
			}
		})
	}
}

func TestFrameToSeconds(t *testing.T) {
	t.Parallel()

	if got := FrameToSeconds(22050, 44100); got != 0.5 {
		t.Errorf("FrameToSeconds() = %v, want 0.5", got)
	}
	if got := FrameToSeconds(10, 0); got != 0 {
		t.Errorf("FrameToSeconds() with zero rate = %v, want 0", got)
	}
}

// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{-1, -math.MaxInt16},
		{0.5, 16383},
		{-0.5, -16383},
		{0.001, 32},
		{1.5, math.MaxInt16},
		{-100, -math.MaxInt16},
	}

	for _, tt := range tests {
		if got := Float32ToInt16(tt.in); got != tt.want {
			t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFloat32ToInt16_Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.2)
	for f := -1.2; f <= 1.2; f += 0.005 {
		cur := Float32ToInt16(float32(f))
		if cur < prev {
			t.Fatalf("Float32ToInt16(%v) = %v after %v", f, cur, prev)
		}
		prev = cur
	}
}

func TestInt16ToFloat32(t *testing.T) {
	t.Parallel()

	if got := Int16ToFloat32(math.MinInt16); got != -1 {
		t.Errorf("Int16ToFloat32(MinInt16) = %v, want -1", got)
	}
	if got := Int16ToFloat32(0); got != 0 {
		t.Errorf("Int16ToFloat32(0) = %v, want 0", got)
	}
	if got := Int16ToFloat32(math.MaxInt16); got >= 1 {
		t.Errorf("Int16ToFloat32(MaxInt16) = %v, want < 1", got)
	}
}

// TestInt16RoundTrip checks that encode then decode stays within one
// quantization step.
func TestInt16RoundTrip(t *testing.T) {
	t.Parallel()

	for f := -1.0; f <= 1.0; f += 0.001 {
		got := Int16ToFloat32(Float32ToInt16(float32(f)))
		if math.Abs(float64(got)-f) > 2.1/32768.0 {
			t.Fatalf("round trip of %v = %v", f, got)
		}
	}
}

func TestPCM16(t *testing.T) {
	t.Parallel()

	got := PCM16([]float32{0, 1, -2})
	want := []int16{0, math.MaxInt16, -math.MaxInt16}
	if len(got) != len(want) {
		t.Fatalf("PCM16 returned %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PCM16()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if n := len(PCM16(nil)); n != 0 {
		t.Errorf("PCM16(nil) returned %d samples", n)
	}
}

func BenchmarkPCM16(b *testing.B) {
	// one second of mono 16 kHz
	samples := make([]float32, 16000)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ReportAllocs()

	for range b.N {
		_ = PCM16(samples)
	}
}

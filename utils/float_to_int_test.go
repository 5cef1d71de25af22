// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input float32
		want  int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{-1, -math.MaxInt16},
		{0.5, 16383},
		{-0.5, -16383},
		{0.25, 8191},
		{0.001, 32},
		{-0.001, -32},
		{1.5, math.MaxInt16},
		{-100, -math.MaxInt16},
		{float32(math.Inf(1)), math.MaxInt16},
		{float32(math.Inf(-1)), -math.MaxInt16},
	}

	for _, tt := range tests {
		if got := Float32ToInt16(tt.input); got != tt.want {
			t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFloat32ToInt16_SymmetricAndMonotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1)

	for i := -100; i <= 100; i++ {
		f := float32(i) / 100

		if pos, neg := Float32ToInt16(f), Float32ToInt16(-f); pos != -neg {
			t.Errorf("Float32ToInt16(±%v) = %d, %d; want symmetric", f, pos, neg)
		}

		curr := Float32ToInt16(f)
		if curr < prev {
			t.Errorf("Float32ToInt16(%v) = %d below previous %d", f, curr, prev)
		}
		prev = curr
	}
}

func TestFloat32sToInt16s(t *testing.T) {
	t.Parallel()

	src := []float32{0, 0.5, -2}

	got := Float32sToInt16s(nil, src)
	want := []int16{0, 16383, -32767}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}

	buf := make([]int16, 8)
	if out := Float32sToInt16s(buf, src); &out[0] != &buf[0] || len(out) != 3 {
		t.Error("Float32sToInt16s did not reuse a large enough dst")
	}
}

func TestFloat32sToInt16s_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := make([]float32, 1024)
	dst := make([]int16, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		dst = Float32sToInt16s(dst, src)
	})

	if allocs > 0 {
		t.Errorf("Float32sToInt16s allocated %v times, want 0", allocs)
	}
}

func BenchmarkFloat32sToInt16s(b *testing.B) {
	// one second of 16 kHz speech
	src := make([]float32, 16000)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.1))
	}

	dst := make([]int16, len(src))

	b.ReportAllocs()

	for b.Loop() {
		dst = Float32sToInt16s(dst, src)
	}
}

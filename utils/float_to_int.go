// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample conversions shared by the writers.
package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it by 32767, truncating
// toward zero. Full negative scale is -32767, never -32768.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767.0)
}

// Float32sToInt16s converts src into dst, growing dst when it is too short,
// and returns the filled slice.
func Float32sToInt16s(dst []int16, src []float32) []int16 {
	if cap(dst) < len(src) {
		dst = make([]int16, len(src))
	}

	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = Float32ToInt16(v)
	}

	return dst
}

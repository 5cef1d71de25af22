// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

const (
	// QuietThreshold is the peak below which AutoGain boosts a signal.
	QuietThreshold = 0.01
	// GainTarget is the peak AutoGain aims for.
	GainTarget = 0.02
	// MaxGain caps the AutoGain factor.
	MaxGain = 100.0
)

// Hook is an in-place post-pass over a mono signal.
type Hook func(samples []float32) []float32

// ApplyHooks runs hooks in order and returns the final slice.
func ApplyHooks(samples []float32, hooks ...Hook) []float32 {
	out := samples
	for _, hook := range hooks {
		out = hook(out)
	}

	return out
}

// Clamp limits every sample to [-1, 1].
func Clamp(samples []float32) []float32 {
	for i, v := range samples {
		if v > 1 {
			samples[i] = 1
		} else if v < -1 {
			samples[i] = -1
		}
	}

	return samples
}

// Peak returns the largest absolute sample value.
func Peak(samples []float32) float32 {
	var peak float32
	for _, v := range samples {
		a := float32(math.Abs(float64(v)))
		if a > peak {
			peak = a
		}
	}

	return peak
}

// AutoGain lifts very quiet recordings. When the peak is in
// (0, QuietThreshold) every sample is multiplied by
// min(MaxGain, GainTarget/peak); anything else is returned untouched.
func AutoGain(samples []float32) []float32 {
	peak := Peak(samples)
	if peak <= 0 || peak >= QuietThreshold {
		return samples
	}

	g := min(float32(MaxGain), float32(GainTarget)/peak)
	for i := range samples {
		samples[i] *= g
	}

	return samples
}

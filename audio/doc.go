// SPDX-License-Identifier: EPL-2.0

// Package audio holds the pieces shared by every container decoder.
//
//   - Decoder turns a container into a mono signal, a
//     *github.com/go-audio/audio.Float32Buffer with one channel.
//   - Registry maps file extensions to decoders, with an optional fallback.
//   - Source and MonoMixer let streaming decoders be folded into a signal
//     through Collect.
//   - Clamp, Peak, AutoGain and ApplyHooks are post-passes on samples.
//   - Error and the Err* class values classify every failure.
//
// # Signals
//
// A decoded signal always has Format.NumChannels == 1 and samples in
// [-1, 1]. Format.SampleRate is whatever the container declared; nothing in
// this module resamples. SourceBitDepth records the container's sample
// width for reporting.
//
// # Errors
//
// Decoders return values created with NewError. Error() is a fixed message
// that is safe to hand to foreign callers, and errors.Is against one of
// ErrContainer, ErrMalformedHeader, ErrUnsupportedFormat, ErrIO,
// ErrEmptySignal or ErrEngineFailure tells the class apart:
//
//	sig, err := dec.Decode(f)
//	switch audio.Class(err) {
//	case audio.ErrUnsupportedFormat:
//	    // ask for another encoding
//	case audio.ErrIO:
//	    // retry
//	}
//
// # Gain
//
// AutoGain only touches signals whose peak is strictly between 0 and
// QuietThreshold, multiplying them by min(MaxGain, GainTarget/peak).
package audio

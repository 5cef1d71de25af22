// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files into mono float32 signals and writes
// 16-bit mono WAV files.
//
// # Supported Formats
//
//   - PCM 16, 24 and 32 bit (format tag 1)
//   - IEEE float 32 bit (format tag 3)
//   - WAVE_FORMAT_EXTENSIBLE (0xFFFE) at 16, 24 or 32 bit
//   - Any channel count and any non-zero sample rate
//
// Extensible files are decoded as integer PCM based on their bit depth. Set
// Decoder.StrictExtensible to honour the subtype GUID instead, which is
// needed for float files that use the extensible header.
//
// # Decoding
//
//	f, _ := os.Open("speech.wav")
//	defer f.Close()
//
//	sig, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, audio.ErrUnsupportedFormat) and friends
//	}
//
// The returned buffer always has one channel. Integer frames are summed
// across channels and divided once by full scale times the channel count;
// float frames are averaged and clamped to [-1, 1]. The sample rate is the
// one declared by the file; nothing is resampled.
//
// # Container Handling
//
// Chunks are walked in order. Unknown chunks (LIST, fact, cue, ...) are
// skipped together with their pad byte, and the first fmt and first data
// chunk win. Headers are validated in this order once the walk is done:
// missing data chunk, zero channels, zero sample rate, then the format tag.
//
// # Errors
//
// Every failure is one of the Err* values of this package, possibly
// wrapping the underlying i/o error. Each unwraps to an error class from
// package audio, and Error() returns a fixed message that existing callers
// match on.
//
// # Writing
//
// WriteWAV16 and WriteMono16 produce a canonical 44 byte header followed by
// little-endian samples, through github.com/go-audio/wav.
package wav

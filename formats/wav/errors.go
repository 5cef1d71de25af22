// SPDX-License-Identifier: EPL-2.0

package wav

import "github.com/ik5/wavbridge/audio"

// The messages are the ones existing foreign callers already match on; do
// not reword them.
var (
	ErrNotWavFile  = audio.NewError(audio.ErrContainer, "Not a RIFF/WAVE file")
	ErrBadFmtChunk = audio.NewError(audio.ErrContainer, "Bad fmt chunk")

	ErrNoDataChunk   = audio.NewError(audio.ErrMalformedHeader, "No data chunk")
	ErrNoChannels    = audio.NewError(audio.ErrMalformedHeader, "No channels")
	ErrBadSampleRate = audio.NewError(audio.ErrMalformedHeader, "Bad sampleRate")

	ErrUnsupportedTag             = audio.NewError(audio.ErrUnsupportedFormat, "Unsupported WAV format tag")
	ErrUnsupportedExtensibleDepth = audio.NewError(audio.ErrUnsupportedFormat, "Unsupported extensible bit depth")
	ErrUnsupportedSubFormat       = audio.NewError(audio.ErrUnsupportedFormat, "Unsupported extensible subformat")
	ErrUnsupportedSampleFormat    = audio.NewError(audio.ErrUnsupportedFormat, "Unsupported WAV format (need PCM16/24/32 or FLOAT32)")

	ErrOpen      = audio.NewError(audio.ErrIO, "Failed to open WAV")
	ErrChunkRead = audio.NewError(audio.ErrIO, "Failed chunk read")
	ErrFmtRead   = audio.NewError(audio.ErrIO, "Failed fmt read")
	ErrPCMRead   = audio.NewError(audio.ErrIO, "Failed PCM read")
	ErrFloatRead = audio.NewError(audio.ErrIO, "Failed float32 read")
)

// SPDX-License-Identifier: EPL-2.0

package wavbridge

import (
	"bytes"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavbridge/audio"
	"github.com/ik5/wavbridge/formats/aiff"
	"github.com/ik5/wavbridge/formats/mp3"
	"github.com/ik5/wavbridge/formats/vorbis"
	"github.com/ik5/wavbridge/formats/wav"
)

// ErrNoDecoder is returned by DecodeFile for a registry without a decoder
// for the file and without a fallback.
var ErrNoDecoder = audio.NewError(audio.ErrUnsupportedFormat, "No decoder for file")

// RegistryOptions tunes the decoders of NewRegistry.
type RegistryOptions struct {
	// StrictExtensible makes the WAV decoder honour the extensible subtype
	// GUID.
	StrictExtensible bool
}

// NewRegistry returns a registry with every container this module decodes.
// Unknown extensions fall back to the WAV decoder, so an unrecognised file
// is reported as "Not a RIFF/WAVE file".
func NewRegistry(opts RegistryOptions) *audio.Registry {
	wavDec := wav.Decoder{StrictExtensible: opts.StrictExtensible}

	reg := audio.NewRegistry()
	reg.Register("wav", wavDec)
	reg.Register("wave", wavDec)
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.SetFallback(wavDec)

	return reg
}

// NewWAVRegistry returns a registry that reads every file as WAV, whatever
// its extension. Non-RIFF input fails with "Not a RIFF/WAVE file".
func NewWAVRegistry(opts RegistryOptions) *audio.Registry {
	wavDec := wav.Decoder{StrictExtensible: opts.StrictExtensible}

	reg := audio.NewRegistry()
	reg.Register("wav", wavDec)
	reg.SetFallback(wavDec)

	return reg
}

// IsWAV reports whether rs starts with a RIFF/WAVE header. rs is rewound to
// where it was.
func IsWAV(rs io.ReadSeeker) (bool, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}

	var hdr [12]byte
	_, readErr := io.ReadFull(rs, hdr[:])

	if _, err := rs.Seek(pos, io.SeekStart); err != nil {
		return false, err
	}

	// short or unreadable input is left to the decoder to report
	if readErr != nil {
		return false, nil
	}

	return bytes.Equal(hdr[0:4], []byte("RIFF")) && bytes.Equal(hdr[8:12], []byte("WAVE")), nil
}

// Decode decodes rs into a mono signal. RIFF/WAVE content always goes to
// the WAV decoder of reg; anything else is routed by the extension of name.
// A nil reg means NewRegistry with default options.
func Decode(reg *audio.Registry, name string, rs io.ReadSeeker) (*goaudio.Float32Buffer, error) {
	if reg == nil {
		reg = NewRegistry(RegistryOptions{})
	}

	isWAV, err := IsWAV(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wav.ErrChunkRead, err)
	}

	if isWAV {
		dec, ok := reg.Get("wav")
		if !ok {
			dec = wav.Decoder{}
		}

		return dec.Decode(rs)
	}

	dec, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDecoder, name)
	}

	return dec.Decode(rs)
}

// DecodeFile opens path and decodes it with Decode. The file is closed
// before returning.
func DecodeFile(reg *audio.Registry, path string) (*goaudio.Float32Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wav.ErrOpen, err)
	}
	defer f.Close()

	return Decode(reg, path, f)
}

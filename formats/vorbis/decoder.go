// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavbridge/audio"
	"github.com/jfreymuth/oggvorbis"
)

// Vorbis decodes to float; this is the depth reported on the signal.
const outputBitDepth = 32

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved values and returns how many it wrote.
	Read(p []float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	// whole frames only
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	return s.dec.Read(dst[:want])
}

// Decoder reads an Ogg Vorbis stream into a mono signal.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (*goaudio.Float32Buffer, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	return decode(dec)
}

func decode(dec oggReader) (*goaudio.Float32Buffer, error) {
	if dec.Channels() < 1 {
		return nil, ErrNoChannels
	}

	src := &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}

	sig, err := audio.Collect(src, outputBitDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return sig, nil
}

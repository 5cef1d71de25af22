// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavbridge/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	scale      float32
	intBuf     *goaudio.IntBuffer
}

func newSource(dec aiffReader, sampleRate, channels, bitDepth int) *source {
	return &source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      fullScale(bitDepth),
	}
}

// fullScale is 2^(bits-1); AIFF samples are signed big-endian at any depth.
func fullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]) / s.scale
	}

	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

// Decoder reads an AIFF file into a mono signal.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (*goaudio.Float32Buffer, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bit", ErrUnsupportedBitDepth, bitDepth)
	}

	sig, err := audio.Collect(newSource(dec, format.SampleRate, format.NumChannels, bitDepth), bitDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return sig, nil
}

// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/wavbridge/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	outputChannels = 2
	outputBitDepth = 16
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // samples, not bytes

func (s *source) ReadSamples(dst []float32) (int, error) {
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
	}

	return samples, err
}

// Decoder reads an MPEG-1/2 Layer III stream into a mono signal.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (*goaudio.Float32Buffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return decode(dec)
}

func decode(dec mp3Reader) (*goaudio.Float32Buffer, error) {
	src := &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}

	sig, err := audio.Collect(src, outputBitDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return sig, nil
}

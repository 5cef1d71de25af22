// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/wavbridge/audio"
)

// Full-scale divisors per integer width.
const (
	fullScale16 float32 = 32768.0
	fullScale24 float32 = 1 << 23
	fullScale32 float32 = 2147483648.0
)

// Payload locates the sample bytes of a data chunk.
type Payload struct {
	Offset int64
	Size   uint32
}

// Frames is the number of whole frames the payload holds for f.
func (p Payload) Frames(f Format) int {
	bps := f.BytesPerSample()
	if bps == 0 || f.Channels == 0 {
		return 0
	}

	return int(p.Size) / bps / int(f.Channels)
}

// DecodeSamples reads size payload bytes from r and returns one float per
// frame. f must already be resolved.
func DecodeSamples(r io.Reader, size uint32, f Format) ([]float32, error) {
	switch f.Encoding {
	case EncodingFloat:
		if f.BitsPerSample == 32 {
			return decodeFloat32(r, size, int(f.Channels))
		}
	case EncodingPCM:
		switch f.BitsPerSample {
		case 16, 24, 32:
			return decodePCM(r, size, int(f.Channels), int(f.BitsPerSample))
		}
	}

	// Resolve lets nothing else through; getting here is a bug upstream.
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSampleFormat, f)
}

func decodeFloat32(r io.Reader, size uint32, channels int) ([]float32, error) {
	raw := make([]byte, size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFloatRead, err)
	}

	count := len(raw) / 4
	frames := count / channels
	out := make([]float32, frames)

	if channels == 1 {
		for i := range frames {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}

		return audio.Clamp(out), nil
	}

	div := float32(channels)
	for i := range frames {
		var acc float32
		base := i * channels * 4
		for c := range channels {
			acc += math.Float32frombits(binary.LittleEndian.Uint32(raw[base+c*4:]))
		}
		out[i] = acc / div
	}

	return audio.Clamp(out), nil
}

// decodePCM sums each frame in an int64 and divides once by
// fullScale*channels. Output must stay bit-identical to that order.
func decodePCM(r io.Reader, size uint32, channels, bits int) ([]float32, error) {
	raw := make([]byte, size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPCMRead, err)
	}

	bps := bits / 8
	frames := len(raw) / bps / channels
	out := make([]float32, frames)

	var (
		read  func(b []byte) int64
		scale float32
	)

	switch bits {
	case 16:
		read, scale = readS16, fullScale16
	case 24:
		read, scale = readS24, fullScale24
	default:
		read, scale = readS32, fullScale32
	}

	div := scale * float32(channels)
	stride := bps * channels

	for i := range frames {
		var acc int64
		base := i * stride
		for c := range channels {
			off := base + c*bps
			acc += read(raw[off : off+bps])
		}
		out[i] = float32(acc) / div
	}

	return out, nil
}

func readS16(b []byte) int64 {
	return int64(int16(binary.LittleEndian.Uint16(b)))
}

// readS24 sign-extends bit 23 of a little-endian 24-bit sample.
func readS24(b []byte) int64 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&0x800000 != 0 {
		v |= ^0xffffff
	}

	return int64(v)
}

func readS32(b []byte) int64 {
	return int64(int32(binary.LittleEndian.Uint32(b)))
}

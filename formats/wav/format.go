// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/go-audio/riff"
)

// Format tags understood by the decoder.
const (
	TagPCM        uint16 = 0x0001
	TagIEEEFloat  uint16 = 0x0003
	TagExtensible uint16 = 0xFFFE
)

// fmtCommonSize is the part of a fmt chunk shared by every format tag.
const fmtCommonSize = 16

// Subtype GUIDs carried by WAVE_FORMAT_EXTENSIBLE.
var (
	SubFormatPCM = [16]byte{
		0x01, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00,
		0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71, 0x00, 0x00,
	}
	SubFormatIEEEFloat = [16]byte{
		0x03, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00,
		0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71, 0x00, 0x00,
	}
)

// Encoding is the sample representation the payload is decoded as.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingPCM
	EncodingFloat
)

func (e Encoding) String() string {
	switch e {
	case EncodingPCM:
		return "pcm"
	case EncodingFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Extensible holds the WAVE_FORMAT_EXTENSIBLE fields. It is only filled in
// when the decoder runs with StrictExtensible.
type Extensible struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [16]byte
}

// Format is the parsed fmt chunk.
type Format struct {
	Tag           uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	Encoding   Encoding
	Extensible *Extensible
}

// BytesPerSample is the container width of one sample of one channel.
func (f Format) BytesPerSample() int { return int(f.BitsPerSample) / 8 }

func (f Format) String() string {
	return fmt.Sprintf("tag=0x%04X encoding=%s channels=%d rate=%d bits=%d",
		f.Tag, f.Encoding, f.Channels, f.SampleRate, f.BitsPerSample)
}

// Resolve picks the effective encoding from the tag and bit depth.
//
// Extensible files are classified by bit depth alone unless the subtype GUID
// was parsed, since encoders disagree on how faithfully they fill it in.
func (f *Format) Resolve() error {
	f.Encoding = EncodingUnknown

	switch f.Tag {
	case TagPCM:
		switch f.BitsPerSample {
		case 16, 24, 32:
			f.Encoding = EncodingPCM
		default:
			return ErrUnsupportedSampleFormat
		}
	case TagIEEEFloat:
		if f.BitsPerSample != 32 {
			return ErrUnsupportedSampleFormat
		}
		f.Encoding = EncodingFloat
	case TagExtensible:
		if f.Extensible != nil {
			return f.resolveSubFormat()
		}

		switch f.BitsPerSample {
		case 16, 24, 32:
			f.Encoding = EncodingPCM
		default:
			return ErrUnsupportedExtensibleDepth
		}
	default:
		return ErrUnsupportedTag
	}

	return nil
}

func (f *Format) resolveSubFormat() error {
	switch f.Extensible.SubFormat {
	case SubFormatPCM:
		switch f.BitsPerSample {
		case 16, 24, 32:
			f.Encoding = EncodingPCM
		default:
			return ErrUnsupportedExtensibleDepth
		}
	case SubFormatIEEEFloat:
		if f.BitsPerSample != 32 {
			return ErrUnsupportedExtensibleDepth
		}
		f.Encoding = EncodingFloat
	default:
		return ErrUnsupportedSubFormat
	}

	return nil
}

// readFormat parses a fmt chunk. Anything past the common 16 bytes is left
// for the caller to skip, except the extensible block in strict mode.
func readFormat(ch *riff.Chunk, strict bool) (Format, error) {
	var f Format

	if ch.Size < fmtCommonSize {
		return f, ErrBadFmtChunk
	}

	for _, dst := range []any{
		&f.Tag,
		&f.Channels,
		&f.SampleRate,
		&f.ByteRate,
		&f.BlockAlign,
		&f.BitsPerSample,
	} {
		if err := ch.ReadLE(dst); err != nil {
			return f, fmt.Errorf("%w: %w", ErrFmtRead, err)
		}
	}

	// cbSize (2) + validBits (2) + channelMask (4) + GUID (16)
	if !strict || f.Tag != TagExtensible || ch.Size < fmtCommonSize+24 {
		return f, nil
	}

	var cbSize uint16
	if err := ch.ReadLE(&cbSize); err != nil {
		return f, fmt.Errorf("%w: %w", ErrFmtRead, err)
	}

	if cbSize < 22 {
		return f, nil
	}

	ext := &Extensible{}
	for _, dst := range []any{&ext.ValidBitsPerSample, &ext.ChannelMask, &ext.SubFormat} {
		if err := ch.ReadLE(dst); err != nil {
			return f, fmt.Errorf("%w: %w", ErrFmtRead, err)
		}
	}

	f.Extensible = ext

	return f, nil
}

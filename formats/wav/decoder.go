// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/ik5/wavbridge/audio"
)

// Decoder reads a WAVE file into a mono signal.
//
// The zero value classifies WAVE_FORMAT_EXTENSIBLE by bit depth only. With
// StrictExtensible set, the subtype GUID decides between PCM and float when
// the fmt chunk carries one.
type Decoder struct {
	StrictExtensible bool
}

// Info is what a scan of the container finds before any sample is read.
type Info struct {
	Format  Format
	Payload Payload
}

// Frames is the number of mono frames Decode will produce.
func (i Info) Frames() int { return i.Payload.Frames(i.Format) }

// ReadInfo walks every chunk, keeps the first fmt and data chunks and
// validates them. The format comes back resolved.
func (d Decoder) ReadInfo(r io.ReadSeeker) (Info, error) {
	var (
		info     Info
		haveFmt  bool
		haveData bool
	)

	cr := NewChunkReader(r)
	if err := cr.ReadHeader(); err != nil {
		return info, err
	}

	for {
		ch, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return info, err
		}

		switch ch.ID {
		case riff.FmtID:
			if !haveFmt {
				info.Format, err = readFormat(ch, d.StrictExtensible)
				if err != nil {
					return info, err
				}
				haveFmt = true
			}
		case riff.DataFormatID:
			if !haveData {
				info.Payload = Payload{Offset: cr.Offset(), Size: cr.Size()}
				haveData = true
			}
		}

		if err := cr.Skip(); err != nil {
			return info, err
		}
	}

	switch {
	case !haveData:
		return info, ErrNoDataChunk
	case info.Format.Channels < 1:
		return info, ErrNoChannels
	case info.Format.SampleRate == 0:
		return info, ErrBadSampleRate
	}

	if err := info.Format.Resolve(); err != nil {
		return info, err
	}

	return info, nil
}

// Decode implements audio.Decoder.
func (d Decoder) Decode(r io.ReadSeeker) (*goaudio.Float32Buffer, error) {
	info, err := d.ReadInfo(r)
	if err != nil {
		return nil, err
	}

	samples, err := d.readPayload(r, info)
	if err != nil {
		return nil, err
	}

	return audio.NewMonoBuffer(int(info.Format.SampleRate), int(info.Format.BitsPerSample), samples), nil
}

func (d Decoder) readPayload(r io.ReadSeeker, info Info) ([]float32, error) {
	readErr := ErrPCMRead
	if info.Format.Encoding == EncodingFloat {
		readErr = ErrFloatRead
	}

	// refuse to allocate for a size the file cannot hold
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", readErr, err)
	}

	if info.Payload.Offset+int64(info.Payload.Size) > end {
		return nil, fmt.Errorf("%w: %w", readErr, io.ErrUnexpectedEOF)
	}

	if _, err := r.Seek(info.Payload.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", readErr, err)
	}

	return DecodeSamples(r, info.Payload.Size, info.Format)
}

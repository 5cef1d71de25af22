// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// Chunk is one RIFF sub-chunk. Data is written as is; odd sizes get a pad
// byte.
type Chunk struct {
	ID   string
	Data []byte
}

// RIFF assembles a container with the given form type and chunks.
func RIFF(form string, chunks ...Chunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString(form)

	for _, ch := range chunks {
		body.WriteString(ch.ID)
		_ = binary.Write(body, binary.LittleEndian, uint32(len(ch.Data)))
		body.Write(ch.Data)
		if len(ch.Data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	_ = binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

// FmtChunk is a plain 16 byte fmt chunk.
func FmtChunk(tag, channels uint16, rate uint32, bits uint16) Chunk {
	return Chunk{ID: "fmt ", Data: fmtBody(tag, channels, rate, bits)}
}

// ExtensibleFmtChunk is a 40 byte WAVE_FORMAT_EXTENSIBLE fmt chunk.
func ExtensibleFmtChunk(channels uint16, rate uint32, bits uint16, subFormat [16]byte) Chunk {
	buf := bytes.NewBuffer(fmtBody(0xFFFE, channels, rate, bits))
	_ = binary.Write(buf, binary.LittleEndian, uint16(22))
	_ = binary.Write(buf, binary.LittleEndian, bits)
	_ = binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.Write(subFormat[:])

	return Chunk{ID: "fmt ", Data: buf.Bytes()}
}

// DataChunk wraps an encoded payload.
func DataChunk(payload []byte) Chunk { return Chunk{ID: "data", Data: payload} }

// WAV is the common fmt + data layout.
func WAV(tag, channels uint16, rate uint32, bits uint16, payload []byte) []byte {
	return RIFF("WAVE", FmtChunk(tag, channels, rate, bits), DataChunk(payload))
}

func fmtBody(tag, channels uint16, rate uint32, bits uint16) []byte {
	buf := new(bytes.Buffer)
	blockAlign := channels * (bits / 8)
	for _, v := range []any{tag, channels, rate, rate * uint32(blockAlign), blockAlign, bits} {
		_ = binary.Write(buf, binary.LittleEndian, v)
	}

	return buf.Bytes()
}

// PCM16 encodes interleaved 16-bit samples.
func PCM16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}

	return out
}

// PCM24 encodes the low 24 bits of each sample.
func PCM24(samples ...int32) []byte {
	out := make([]byte, 0, 3*len(samples))
	for _, s := range samples {
		out = append(out, byte(s), byte(s>>8), byte(s>>16))
	}

	return out
}

// PCM32 encodes interleaved 32-bit integer samples.
func PCM32(samples ...int32) []byte {
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(s))
	}

	return out
}

// Float32 encodes interleaved IEEE float samples.
func Float32(samples ...float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(s))
	}

	return out
}

// WriteSeeker is an in-memory io.WriteSeeker for encoders that patch their
// header after the payload.
type WriteSeeker struct {
	buf []byte
	pos int
}

func (w *WriteSeeker) Write(p []byte) (int, error) {
	end := w.pos + len(p)
	if end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}

	copy(w.buf[w.pos:], p)
	w.pos = end

	return len(p), nil
}

func (w *WriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(w.pos)
	case io.SeekEnd:
		base = int64(len(w.buf))
	default:
		return 0, errors.New("audiotest: bad whence")
	}

	pos := base + offset
	if pos < 0 {
		return 0, errors.New("audiotest: negative position")
	}

	w.pos = int(pos)

	return pos, nil
}

func (w *WriteSeeker) Bytes() []byte { return w.buf }
func (w *WriteSeeker) Len() int      { return len(w.buf) }

// Reader returns a fresh reader over everything written so far.
func (w *WriteSeeker) Reader() *bytes.Reader { return bytes.NewReader(w.buf) }

// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// ChunkReader walks a RIFF container one chunk at a time. It knows nothing
// about audio; it only tracks where each chunk payload starts.
type ChunkReader struct {
	rs     io.ReadSeeker
	parser *riff.Parser

	offset int64  // absolute offset of the current payload
	size   uint32 // declared size of the current payload
}

func NewChunkReader(rs io.ReadSeeker) *ChunkReader {
	return &ChunkReader{
		rs:     rs,
		parser: riff.New(rs),
	}
}

// ReadHeader consumes the 12 byte "RIFF" <size> "WAVE" header.
func (c *ChunkReader) ReadHeader() error {
	id, size, err := c.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	if id != riff.RiffID {
		return ErrNotWavFile
	}

	var form [4]byte
	if err := binary.Read(c.rs, binary.BigEndian, &form); err != nil {
		return fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	if form != riff.WavFormatID {
		return ErrNotWavFile
	}

	c.parser.ID = id
	c.parser.Size = size
	c.parser.Format = form

	return nil
}

// Next reads the next chunk header. The returned chunk reads at most the
// declared payload size. io.EOF marks the end of the container and is not
// a failure; a short trailing header is treated the same way.
func (c *ChunkReader) Next() (*riff.Chunk, error) {
	id, size, err := c.parser.IDnSize()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("%w: %w", ErrChunkRead, err)
	}

	pos, err := c.rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChunkRead, err)
	}

	c.offset = pos
	c.size = size

	return &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    io.LimitReader(c.rs, int64(size)),
	}, nil
}

// Offset is the absolute position of the current chunk payload.
func (c *ChunkReader) Offset() int64 { return c.offset }

// Size is the declared payload size of the current chunk.
func (c *ChunkReader) Size() uint32 { return c.size }

// Skip moves past the current payload and its pad byte, regardless of how
// much of it was already read. Nothing is buffered.
func (c *ChunkReader) Skip() error {
	end := c.offset + int64(c.size)
	if c.size%2 == 1 {
		end++
	}

	if _, err := c.rs.Seek(end, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", ErrChunkRead, err)
	}

	return nil
}

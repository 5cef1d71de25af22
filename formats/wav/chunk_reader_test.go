// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/wavbridge/internal/audiotest"
)

func TestChunkReader_WalksAllChunks(t *testing.T) {
	t.Parallel()

	data := audiotest.RIFF("WAVE",
		audiotest.Chunk{ID: "odd!", Data: []byte{1, 2, 3}},
		audiotest.Chunk{ID: "even", Data: []byte{1, 2, 3, 4}},
		audiotest.Chunk{ID: "none", Data: nil},
	)

	cr := NewChunkReader(bytes.NewReader(data))
	if err := cr.ReadHeader(); err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}

	want := []struct {
		id     string
		offset int64
		size   uint32
	}{
		{"odd!", 20, 3},
		{"even", 32, 4},
		{"none", 44, 0},
	}

	for _, w := range want {
		ch, err := cr.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}

		if string(ch.ID[:]) != w.id {
			t.Errorf("ID = %q, want %q", ch.ID, w.id)
		}

		if cr.Offset() != w.offset || cr.Size() != w.size {
			t.Errorf("%s: offset/size = %d/%d, want %d/%d", w.id, cr.Offset(), cr.Size(), w.offset, w.size)
		}

		if err := cr.Skip(); err != nil {
			t.Fatalf("Skip() error = %v", err)
		}
	}

	if _, err := cr.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() at end error = %v, want io.EOF", err)
	}
}

func TestChunkReader_SkipAfterPartialRead(t *testing.T) {
	t.Parallel()

	data := audiotest.RIFF("WAVE",
		audiotest.Chunk{ID: "big ", Data: bytes.Repeat([]byte{7}, 100)},
		audiotest.Chunk{ID: "next", Data: []byte{9, 9}},
	)

	cr := NewChunkReader(bytes.NewReader(data))
	if err := cr.ReadHeader(); err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}

	ch, err := cr.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	var b [10]byte
	if _, err := io.ReadFull(ch.R, b[:]); err != nil {
		t.Fatalf("partial read error = %v", err)
	}

	if err := cr.Skip(); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}

	ch, err = cr.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if string(ch.ID[:]) != "next" {
		t.Errorf("ID = %q, want \"next\"", ch.ID)
	}
}

func TestChunkReader_LimitsPayload(t *testing.T) {
	t.Parallel()

	data := audiotest.RIFF("WAVE",
		audiotest.Chunk{ID: "four", Data: []byte{1, 2, 3, 4}},
		audiotest.Chunk{ID: "more", Data: []byte{5, 6}},
	)

	cr := NewChunkReader(bytes.NewReader(data))
	if err := cr.ReadHeader(); err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}

	ch, err := cr.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	got, err := io.ReadAll(ch.R)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("payload = %v, want [1 2 3 4]", got)
	}
}

func TestChunkReader_ShortTrailingHeaderIsEnd(t *testing.T) {
	t.Parallel()

	data := append(audiotest.RIFF("WAVE", audiotest.DataChunk([]byte{1, 2})), 'x', 'y')

	cr := NewChunkReader(bytes.NewReader(data))
	if err := cr.ReadHeader(); err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}

	if _, err := cr.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if err := cr.Skip(); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}

	if _, err := cr.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}

func TestChunkReader_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "wave", data: audiotest.RIFF("WAVE")},
		{name: "rifx", data: append([]byte("RIFX\x04\x00\x00\x00"), "WAVE"...), wantErr: ErrNotWavFile},
		{name: "aiff form", data: audiotest.RIFF("AIFF"), wantErr: ErrNotWavFile},
		{name: "truncated form", data: []byte("RIFF\x04\x00\x00\x00WA"), wantErr: ErrNotWavFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := NewChunkReader(bytes.NewReader(tt.data)).ReadHeader()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ReadHeader() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadHeader() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

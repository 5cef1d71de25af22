// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/wavbridge/internal/audiotest"
)

func TestCollect_StereoToMono(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 10000, func(frame, channel int) float32 {
		if channel == 0 {
			return 0.25
		}
		return 0.75
	})

	sig, err := Collect(src, 16)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if sig.Format.NumChannels != 1 || sig.Format.SampleRate != 8000 {
		t.Errorf("format = %+v, want mono 8000", sig.Format)
	}

	if len(sig.Data) != 10000 {
		t.Fatalf("len = %d, want 10000", len(sig.Data))
	}

	for i, v := range sig.Data {
		if v != 0.5 {
			t.Fatalf("frame %d = %v, want 0.5", i, v)
		}
	}

	if src.Closed() {
		t.Error("Collect() closed its source")
	}
}

func TestCollect_ShortReads(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(16000, 1, 1000, 0.1).WithShortReads(7)

	sig, err := Collect(src, 16)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(sig.Data) != 1000 {
		t.Errorf("len = %d, want 1000", len(sig.Data))
	}
}

func TestCollect_Clamps(t *testing.T) {
	t.Parallel()

	sig, err := Collect(audiotest.NewConstantSource(8000, 3, 4, 1.5), 32)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	for i, v := range sig.Data {
		if v != 1 {
			t.Errorf("frame %d = %v, want 1", i, v)
		}
	}
}

func TestCollect_Empty(t *testing.T) {
	t.Parallel()

	sig, err := Collect(audiotest.NewSilentSource(8000, 2, 0), 16)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(sig.Data) != 0 {
		t.Errorf("len = %d, want 0", len(sig.Data))
	}
}

func TestCollect_Error(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 100).WithError(50, io.ErrUnexpectedEOF)

	sig, err := Collect(src, 16)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Collect() error = %v, want io.ErrUnexpectedEOF", err)
	}

	if sig != nil {
		t.Error("Collect() returned a signal on failure")
	}
}

// stallingSource never reports EOF and never yields samples.
type stallingSource struct{}

func (stallingSource) SampleRate() int                  { return 8000 }
func (stallingSource) Channels() int                    { return 1 }
func (stallingSource) BufSize() int                     { return 0 }
func (stallingSource) Close() error                     { return nil }
func (stallingSource) ReadSamples([]float32) (int, error) { return 0, nil }

func TestCollect_StallingSourceTerminates(t *testing.T) {
	t.Parallel()

	sig, err := Collect(stallingSource{}, 16)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(sig.Data) != 0 {
		t.Errorf("len = %d, want 0", len(sig.Data))
	}
}

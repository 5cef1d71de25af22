// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/wavbridge/engine"
	"github.com/ik5/wavbridge/engine/enginetest"
	"github.com/ik5/wavbridge/formats/wav"
	"github.com/ik5/wavbridge/internal/audiotest"
	"github.com/ik5/wavbridge/internal/config"
)

func useStub(t *testing.T, stub *enginetest.Stub) {
	t.Helper()

	orig := newLoader
	newLoader = func(config.Config) engine.Loader { return stub }
	t.Cleanup(func() { newLoader = orig })

	t.Chdir(t.TempDir())
}

func TestLifecycle(t *testing.T) {
	stub := &enginetest.Stub{Segments: []string{" Hello", " there."}}
	useStub(t, stub)

	h := initSession("ggml-base.en.bin")
	if h == 0 {
		t.Fatal("initSession() returned the failure handle")
	}

	path := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(path, audiotest.WAV(wav.TagPCM, 1, 16000, 16, audiotest.PCM16(1, 2, 3)), 0o600); err != nil {
		t.Fatal(err)
	}

	if got := transcribe(h, path); got != " Hello there." {
		t.Errorf("transcribe() = %q", got)
	}

	if got := transcribe(h, filepath.Join(t.TempDir(), "missing.wav")); got != "Failed to open WAV" {
		t.Errorf("transcribe(missing) = %q", got)
	}

	release(h)
	release(h)

	if stub.Closes() != 1 {
		t.Errorf("engine closes = %d, want 1", stub.Closes())
	}

	if got := transcribe(h, path); got != "Invalid session handle" {
		t.Errorf("transcribe() after release = %q", got)
	}

	if stub.Loads()[0] != "ggml-base.en.bin" {
		t.Errorf("loads = %v", stub.Loads())
	}
}

func TestInitFailure(t *testing.T) {
	useStub(t, &enginetest.Stub{LoadErr: errors.New("no model")})

	if h := initSession("missing.bin"); h != 0 {
		t.Errorf("initSession() = %d, want 0", h)
	}
}

func TestUnknownHandle(t *testing.T) {
	if got := transcribe(987654, "a.wav"); got != "Invalid session handle" {
		t.Errorf("transcribe(unknown) = %q", got)
	}

	release(987654)
}

func TestTranscribe_ReadsWAVRegardlessOfName(t *testing.T) {
	useStub(t, &enginetest.Stub{Segments: []string{"hello"}})

	h := initSession("ggml-base.en.bin")
	if h == 0 {
		t.Fatal("initSession() returned the failure handle")
	}
	defer release(h)

	dir := t.TempDir()
	valid := audiotest.WAV(wav.TagPCM, 1, 16000, 16, audiotest.PCM16(100, -100))

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"a.wav", valid, "hello"},
		{"a.ogg", valid, "hello"},
		{"a.mp3", valid, "hello"},
		{"a.aif", valid, "hello"},
		{"junk.mp3", []byte("plain text, no audio here"), "Not a RIFF/WAVE file"},
		{"junk.ogg", []byte("plain text, no audio here"), "Not a RIFF/WAVE file"},
	}

	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		if err := os.WriteFile(path, tt.data, 0o600); err != nil {
			t.Fatal(err)
		}

		if got := transcribe(h, path); got != tt.want {
			t.Errorf("transcribe(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTranscribe_EngineErrorKeepsLegacyText(t *testing.T) {
	useStub(t, &enginetest.Stub{RunErr: errors.New("status code 500: upstream exploded")})

	h := initSession("ggml-base.en.bin")
	if h == 0 {
		t.Fatal("initSession() returned the failure handle")
	}
	defer release(h)

	path := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(path, audiotest.WAV(wav.TagPCM, 1, 16000, 16, audiotest.PCM16(1, 2)), 0o600); err != nil {
		t.Fatal(err)
	}

	if got := transcribe(h, path); got != "Transcription failed" {
		t.Errorf("transcribe() = %q, want the bare legacy message", got)
	}
}

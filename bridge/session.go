// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavbridge"
	"github.com/ik5/wavbridge/audio"
	"github.com/ik5/wavbridge/engine"
	"github.com/ik5/wavbridge/internal/metrics"
)

// Session owns one engine context. Requests on a session are serialized:
// a second Transcribe blocks until the first one returns.
type Session struct {
	mu     sync.Mutex
	ctx    engine.Context
	model  string
	closed bool

	registry *audio.Registry
	options  engine.Options
	hooks    []audio.Hook
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry replaces the default registry, which reads every file as WAV.
func WithRegistry(reg *audio.Registry) Option {
	return func(s *Session) { s.registry = reg }
}

// WithEngineOptions replaces engine.DefaultOptions. SampleRate is always
// taken from the decoded signal.
func WithEngineOptions(opts engine.Options) Option {
	return func(s *Session) { s.options = opts }
}

// WithAutoGain turns the quiet signal boost on or off. It is on by default.
func WithAutoGain(enabled bool) Option {
	return func(s *Session) {
		if enabled {
			s.hooks = []audio.Hook{audio.AutoGain}
		} else {
			s.hooks = nil
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMetrics records every request on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// Init loads model through loader and returns a ready session. On failure
// no session is returned.
func Init(loader engine.Loader, model string, opts ...Option) (*Session, error) {
	if loader == nil {
		return nil, ErrNoLoader
	}

	s := &Session{
		model:   model,
		options: engine.DefaultOptions(),
		hooks:   []audio.Hook{audio.AutoGain},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = wavbridge.NewWAVRegistry(wavbridge.RegistryOptions{})
	}

	ctx, err := loader.Load(model)
	if err != nil {
		return nil, fmt.Errorf("bridge: load %q: %w", model, err)
	}

	s.ctx = ctx
	s.metrics.SessionOpened()

	return s, nil
}

// Model returns the model the session was initialised with.
func (s *Session) Model() string {
	if s == nil {
		return ""
	}

	return s.model
}

// Transcribe decodes the file at path and runs the engine over it.
// RIFF/WAVE content is always read as WAV. Other content goes to the
// decoder the registry picks by extension, and the default registry reads
// everything as WAV.
func (s *Session) Transcribe(path string) Result {
	if s == nil {
		return Result{Err: ErrNilSession}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.run(path, func() (*goaudio.Float32Buffer, error) {
		return wavbridge.DecodeFile(s.registry, path)
	})
}

// TranscribeReader is Transcribe for data that is not on disk. name only
// selects the decoder for non-RIFF content.
func (s *Session) TranscribeReader(name string, r io.ReadSeeker) Result {
	if s == nil {
		return Result{Err: ErrNilSession}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.run(name, func() (*goaudio.Float32Buffer, error) {
		return wavbridge.Decode(s.registry, name, r)
	})
}

// run is the request pipeline. s.mu is held.
func (s *Session) run(name string, decode func() (*goaudio.Float32Buffer, error)) Result {
	if s.closed {
		return Result{Err: ErrNilSession}
	}

	start := time.Now()

	res, label, frames, rate := s.pipeline(decode)

	elapsed := time.Since(start)
	s.metrics.RecordTranscription(label, elapsed.Seconds())

	if res.Err != nil {
		s.logger.Warn("transcription failed",
			"path", name,
			"model", s.model,
			"duration_ms", elapsed.Milliseconds(),
			"error", res.Err,
		)

		return res
	}

	s.metrics.RecordDecodedFrames(frames)
	s.logger.Info("transcription complete",
		"path", name,
		"model", s.model,
		"frames", frames,
		"sample_rate", rate,
		"duration_ms", elapsed.Milliseconds(),
	)

	return res
}

func (s *Session) pipeline(decode func() (*goaudio.Float32Buffer, error)) (Result, string, int, int) {
	sig, err := decode()
	if err != nil {
		return Result{Err: err}, metrics.ResultDecodeError, 0, 0
	}

	if sig == nil || len(sig.Data) == 0 {
		return Result{Err: ErrEmptySignal}, metrics.ResultEmpty, 0, 0
	}

	samples := audio.ApplyHooks(sig.Data, s.hooks...)

	opts := s.options
	opts.SampleRate = sig.Format.SampleRate

	if err := s.ctx.Run(samples, opts); err != nil {
		return Result{Err: fmt.Errorf("%w: %w", ErrEngineFailure, err)}, metrics.ResultEngineError, len(samples), opts.SampleRate
	}

	var text strings.Builder
	for i := range s.ctx.SegmentCount() {
		text.WriteString(s.ctx.SegmentText(i))
	}

	return Result{Text: text.String()}, metrics.ResultOK, len(samples), opts.SampleRate
}

// Close releases the engine context. It waits for an in-flight request.
// Closing a nil or closed session does nothing.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	s.metrics.SessionClosed()

	return s.ctx.Close()
}

// IsDecodeError reports whether err came from decoding rather than from the
// session or the engine.
func IsDecodeError(err error) bool {
	switch audio.Class(err) {
	case audio.ErrContainer, audio.ErrMalformedHeader, audio.ErrUnsupportedFormat, audio.ErrIO:
		return true
	}

	return false
}

// SPDX-License-Identifier: EPL-2.0

package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/ik5/wavbridge/audio"
	"github.com/ik5/wavbridge/engine"
	"github.com/ik5/wavbridge/formats/wav"
)

// DefaultSampleRate is used to label uploads when Options.SampleRate is 0.
const DefaultSampleRate = 16000

// autoLanguage asks the server to detect the language.
const autoLanguage = "auto"

var (
	// ErrNoModel is returned by Load for an empty model name.
	ErrNoModel = errors.New("openai: empty model name")
	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("openai: context closed")
)

// Config selects the server. An empty BaseURL means api.openai.com; point it
// at a whisper.cpp server or LocalAI (e.g. "http://localhost:8080/v1") to
// stay local.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds a single request. Zero means no limit.
	Timeout time.Duration
}

// transcriber is the part of *goopenai.Client the engine uses.
type transcriber interface {
	CreateTranscription(ctx context.Context, req goopenai.AudioRequest) (goopenai.AudioResponse, error)
	CreateTranslation(ctx context.Context, req goopenai.AudioRequest) (goopenai.AudioResponse, error)
}

// Loader connects to an OpenAI compatible transcription endpoint.
type Loader struct {
	cfg    Config
	client transcriber
}

// NewLoader returns a loader for cfg. No request is made until Run.
func NewLoader(cfg Config) *Loader {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Loader{
		cfg:    cfg,
		client: goopenai.NewClientWithConfig(clientCfg),
	}
}

// Load returns a context bound to the model name, e.g. "whisper-1".
func (l *Loader) Load(model string) (engine.Context, error) {
	if strings.TrimSpace(model) == "" {
		return nil, ErrNoModel
	}

	return &recognizer{
		model:   model,
		timeout: l.cfg.Timeout,
		client:  l.client,
	}, nil
}

type recognizer struct {
	model   string
	timeout time.Duration
	client  transcriber

	mu       sync.Mutex
	segments []string
	closed   bool
}

func (r *recognizer) Run(samples []float32, opts engine.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.segments = nil

	if r.closed {
		return ErrClosed
	}

	path, err := writeUpload(samples, opts.SampleRate)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	req := goopenai.AudioRequest{
		Model:    r.model,
		FilePath: path,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	}

	if opts.Language != autoLanguage {
		req.Language = opts.Language
	}

	if opts.Timestamps {
		req.TimestampGranularities = []goopenai.TranscriptionTimestampGranularity{
			goopenai.TranscriptionTimestampGranularitySegment,
		}
	}

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var resp goopenai.AudioResponse
	if opts.Translate {
		resp, err = r.client.CreateTranslation(ctx, req)
	} else {
		resp, err = r.client.CreateTranscription(ctx, req)
	}

	if err != nil {
		return fmt.Errorf("openai: %s: %w", r.model, err)
	}

	for _, seg := range resp.Segments {
		text := seg.Text
		if opts.Timestamps {
			text = fmt.Sprintf("[%s --> %s]%s", timestamp(seg.Start), timestamp(seg.End), text)
		}

		r.segments = append(r.segments, text)
	}

	if len(r.segments) == 0 && resp.Text != "" {
		r.segments = []string{resp.Text}
	}

	return nil
}

func (r *recognizer) SegmentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.segments)
}

func (r *recognizer) SegmentText(i int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i < 0 || i >= len(r.segments) {
		return ""
	}

	return r.segments[i]
}

func (r *recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.segments = nil

	return nil
}

// writeUpload stores samples as a 16-bit mono WAV in a temp file and returns
// its path. The caller removes the file.
func writeUpload(samples []float32, sampleRate int) (string, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	f, err := os.CreateTemp("", "wavbridge-*.wav")
	if err != nil {
		return "", fmt.Errorf("openai: upload: %w", err)
	}

	sig := audio.NewMonoBuffer(sampleRate, 16, samples)

	if err := wav.WriteMono16(f, sig); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("openai: upload: %w", err)
	}

	return f.Name(), nil
}

// timestamp formats seconds as hh:mm:ss.mmm.
func timestamp(sec float64) string {
	d := time.Duration(sec * float64(time.Second)).Round(time.Millisecond)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second

	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, d/time.Millisecond)
}

// SPDX-License-Identifier: EPL-2.0

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	gowav "github.com/go-audio/wav"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/ik5/wavbridge/engine"
)

type upload struct {
	path        string
	model       string
	language    string
	format      string
	granularity []string
	sampleRate  int
	samples     []int
}

// newServer answers /v1/audio/{transcriptions,translations} with body and
// records what it was sent.
func newServer(t *testing.T, body any) (*httptest.Server, func() []upload) {
	t.Helper()

	var (
		mu   sync.Mutex
		seen []upload
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()

		data, _ := io.ReadAll(f)
		dec := gowav.NewDecoder(bytes.NewReader(data))

		buf, err := dec.FullPCMBuffer()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		mu.Lock()
		seen = append(seen, upload{
			path:        r.URL.Path,
			model:       r.FormValue("model"),
			language:    r.FormValue("language"),
			format:      r.FormValue("response_format"),
			granularity: r.MultipartForm.Value["timestamp_granularities[]"],
			sampleRate:  int(dec.SampleRate),
			samples:     buf.Data,
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}

	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)

	return srv, func() []upload {
		mu.Lock()
		defer mu.Unlock()
		return append([]upload(nil), seen...)
	}
}

func verbose(text string, segs ...map[string]any) map[string]any {
	return map[string]any{
		"task":     "transcribe",
		"language": "english",
		"text":     text,
		"segments": segs,
	}
}

func seg(start, end float64, text string) map[string]any {
	return map[string]any{"start": start, "end": end, "text": text}
}

func load(t *testing.T, baseURL string) engine.Context {
	t.Helper()

	ctx, err := NewLoader(Config{BaseURL: baseURL + "/v1/"}).Load("whisper-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close() })

	return ctx
}

func TestRun_Segments(t *testing.T) {
	t.Parallel()

	srv, uploads := newServer(t, verbose(" Hello world.",
		seg(0, 1.5, " Hello"),
		seg(1.5, 2, " world."),
	))

	ctx := load(t, srv.URL)

	opts := engine.DefaultOptions()
	opts.SampleRate = 8000

	if err := ctx.Run([]float32{0, 0.5, -0.5}, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := ctx.SegmentCount(); got != 2 {
		t.Fatalf("SegmentCount() = %d, want 2", got)
	}

	if got := ctx.SegmentText(0) + ctx.SegmentText(1); got != " Hello world." {
		t.Errorf("text = %q", got)
	}

	up := uploads()
	if len(up) != 1 {
		t.Fatalf("uploads = %d, want 1", len(up))
	}

	u := up[0]
	if u.path != "/v1/audio/transcriptions" {
		t.Errorf("path = %q", u.path)
	}

	if u.model != "whisper-1" || u.language != "en" || u.format != "verbose_json" {
		t.Errorf("form = %+v", u)
	}

	if len(u.granularity) != 0 {
		t.Errorf("timestamp_granularities = %v, want none", u.granularity)
	}

	if u.sampleRate != 8000 {
		t.Errorf("upload rate = %d, want 8000", u.sampleRate)
	}

	want := []int{0, 16383, -16383}
	if len(u.samples) != len(want) {
		t.Fatalf("upload samples = %v, want %v", u.samples, want)
	}

	for i := range want {
		if u.samples[i] != want[i] {
			t.Errorf("upload sample %d = %d, want %d", i, u.samples[i], want[i])
		}
	}
}

func TestRun_TextOnlyResponse(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, verbose("just text"))
	ctx := load(t, srv.URL)

	if err := ctx.Run([]float32{0.1}, engine.DefaultOptions()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if ctx.SegmentCount() != 1 || ctx.SegmentText(0) != "just text" {
		t.Errorf("segments = %d %q", ctx.SegmentCount(), ctx.SegmentText(0))
	}
}

func TestRun_TimestampsAndTranslate(t *testing.T) {
	t.Parallel()

	srv, uploads := newServer(t, verbose(" Hi", seg(61.25, 62, " Hi")))
	ctx := load(t, srv.URL)

	opts := engine.Options{Language: "auto", Timestamps: true, Translate: true}
	if err := ctx.Run([]float32{0.1}, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := ctx.SegmentText(0), "[00:01:01.250 --> 00:01:02.000] Hi"; got != want {
		t.Errorf("SegmentText(0) = %q, want %q", got, want)
	}

	u := uploads()[0]
	if u.path != "/v1/audio/translations" {
		t.Errorf("path = %q, want translations", u.path)
	}

	if u.language != "" {
		t.Errorf("language = %q, want empty for auto", u.language)
	}

	if u.sampleRate != DefaultSampleRate {
		t.Errorf("upload rate = %d, want %d", u.sampleRate, DefaultSampleRate)
	}
}

func TestRun_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"model not loaded","type":"server_error"}}`))
	}))
	t.Cleanup(srv.Close)

	ctx := load(t, srv.URL)

	if err := ctx.Run([]float32{0.1}, engine.DefaultOptions()); err == nil {
		t.Fatal("Run() error = nil, want server error")
	}

	if ctx.SegmentCount() != 0 {
		t.Errorf("SegmentCount() = %d after failure, want 0", ctx.SegmentCount())
	}
}

type mockTranscriber struct {
	resp  goopenai.AudioResponse
	err   error
	calls []string
	files []bool
}

func (m *mockTranscriber) record(kind string, req goopenai.AudioRequest) {
	_, err := os.Stat(req.FilePath)
	m.calls = append(m.calls, kind)
	m.files = append(m.files, err == nil)
}

func (m *mockTranscriber) CreateTranscription(_ context.Context, req goopenai.AudioRequest) (goopenai.AudioResponse, error) {
	m.record("transcription", req)
	return m.resp, m.err
}

func (m *mockTranscriber) CreateTranslation(_ context.Context, req goopenai.AudioRequest) (goopenai.AudioResponse, error) {
	m.record("translation", req)
	return m.resp, m.err
}

func TestRun_WrapsClientError(t *testing.T) {
	t.Parallel()

	errAPI := errors.New("connection refused")
	m := &mockTranscriber{err: errAPI}

	l := &Loader{client: m}
	ctx, _ := l.Load("base")

	err := ctx.Run([]float32{0}, engine.DefaultOptions())
	if !errors.Is(err, errAPI) {
		t.Errorf("Run() error = %v, want %v", err, errAPI)
	}

	if len(m.calls) != 1 || m.calls[0] != "transcription" || !m.files[0] {
		t.Errorf("calls = %v files = %v", m.calls, m.files)
	}
}

func TestRun_RemovesUpload(t *testing.T) {
	t.Parallel()

	var path string
	m := &captureTranscriber{onCall: func(p string) { path = p }}

	ctx, _ := (&Loader{client: m}).Load("base")
	if err := ctx.Run([]float32{0.2}, engine.DefaultOptions()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if path == "" {
		t.Fatal("no upload path seen")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("upload %s still exists: %v", path, err)
	}
}

type captureTranscriber struct {
	onCall func(path string)
}

func (c *captureTranscriber) CreateTranscription(_ context.Context, req goopenai.AudioRequest) (goopenai.AudioResponse, error) {
	c.onCall(req.FilePath)
	return goopenai.AudioResponse{Text: "ok"}, nil
}

func (c *captureTranscriber) CreateTranslation(ctx context.Context, req goopenai.AudioRequest) (goopenai.AudioResponse, error) {
	return c.CreateTranscription(ctx, req)
}

func TestLoad_EmptyModel(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader(Config{}).Load("  "); !errors.Is(err, ErrNoModel) {
		t.Errorf("Load() error = %v, want ErrNoModel", err)
	}
}

func TestRun_AfterClose(t *testing.T) {
	t.Parallel()

	m := &mockTranscriber{resp: goopenai.AudioResponse{Text: "x"}}
	ctx, _ := (&Loader{client: m}).Load("base")
	_ = ctx.Close()

	if err := ctx.Run([]float32{0}, engine.DefaultOptions()); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() error = %v, want ErrClosed", err)
	}

	if len(m.calls) != 0 {
		t.Errorf("client called %d times after Close", len(m.calls))
	}
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sec  float64
		want string
	}{
		{0, "00:00:00.000"},
		{1.5, "00:00:01.500"},
		{3725.042, "01:02:05.042"},
	}

	for _, tt := range tests {
		if got := timestamp(tt.sec); got != tt.want {
			t.Errorf("timestamp(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

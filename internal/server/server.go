// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ik5/wavbridge/audio"
	"github.com/ik5/wavbridge/bridge"
	"github.com/ik5/wavbridge/internal/metrics"
)

const (
	defaultMaxUpload       = 25 << 20
	defaultShutdownTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Transcriber is the part of *bridge.Session the server uses.
type Transcriber interface {
	TranscribeReader(name string, r io.ReadSeeker) bridge.Result
}

// Options configures New. Zero values pick defaults.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Gatherer backs GET /metrics. Nil means the default gatherer.
	Gatherer        prometheus.Gatherer
	MaxUploadBytes  int
	ShutdownTimeout time.Duration
}

// Server exposes a Transcriber over HTTP and WebSocket.
type Server struct {
	app             *fiber.App
	tr              Transcriber
	logger          *slog.Logger
	metrics         *metrics.Metrics
	shutdownTimeout time.Duration
}

type transcribeResponse struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func New(tr Transcriber, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUpload
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		tr:              tr,
		logger:          opts.Logger,
		metrics:         opts.Metrics,
		shutdownTimeout: opts.ShutdownTimeout,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "wavscribe",
		BodyLimit:             opts.MaxUploadBytes,
		DisableStartupMessage: true,
	})

	s.app.Use(s.requestID, s.observe)

	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	s.app.Post("/v1/transcribe", s.handleTranscribe)

	s.app.Use("/v1/ws", requireUpgrade)
	s.app.Get("/v1/ws", s.handleStream())

	return s
}

// App returns the underlying fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Start listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("http server shutting down")
		return s.app.ShutdownWithTimeout(s.shutdownTimeout)
	}
}

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	c.Locals(requestIDKey, id)
	c.Set(requestIDHeader, id)

	return c.Next()
}

func (s *Server) observe(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	s.metrics.RecordHTTPRequest(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start).Seconds())

	return err
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleTranscribe(c *fiber.Ctx) error {
	id := requestIDOf(c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(transcribeResponse{ID: id, Error: "multipart field `file` is required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(transcribeResponse{ID: id, Error: "unreadable upload"})
	}
	defer f.Close()

	res := s.tr.TranscribeReader(uploadName(fh.Filename), f)
	if res.Err != nil {
		s.logger.Warn("transcribe request failed", "request_id", id, "file", fh.Filename, "error", res.Err)
		return c.Status(StatusFor(res.Err)).JSON(transcribeResponse{ID: id, Error: res.String()})
	}

	return c.JSON(transcribeResponse{ID: id, Text: res.Text})
}

// StatusFor maps a transcription error to an HTTP status.
func StatusFor(err error) int {
	switch audio.Class(err) {
	case audio.ErrUnsupportedFormat:
		return fiber.StatusUnsupportedMediaType
	case audio.ErrContainer, audio.ErrMalformedHeader, audio.ErrIO, audio.ErrEmptySignal:
		return fiber.StatusUnprocessableEntity
	case audio.ErrEngineFailure:
		return fiber.StatusBadGateway
	}

	if errors.Is(err, bridge.ErrNilSession) {
		return fiber.StatusServiceUnavailable
	}

	return fiber.StatusInternalServerError
}

// uploadName keeps only the extension of a client supplied file name; it
// selects the decoder and nothing else.
func uploadName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" {
		ext = ".wav"
	}

	return "upload" + ext
}

func requestIDOf(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

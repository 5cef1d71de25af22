// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log/slog"
	"os"

	"github.com/ik5/wavbridge"
	"github.com/ik5/wavbridge/bridge"
	"github.com/ik5/wavbridge/engine"
	"github.com/ik5/wavbridge/engine/openai"
	"github.com/ik5/wavbridge/internal/config"
)

var (
	sessions bridge.Table

	// newLoader is replaced in tests.
	newLoader = func(cfg config.Config) engine.Loader {
		return openai.NewLoader(openai.Config{
			BaseURL: cfg.Engine.BaseURL,
			APIKey:  cfg.Engine.APIKey,
			Timeout: cfg.Engine.Timeout(),
		})
	}
)

func loadConfig() (config.Config, *slog.Logger) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring env file", "error", err)
	}

	cfg, err := config.Load(config.LoadOptions{Defaults: config.DefaultConfig()})
	if err != nil {
		logger.Warn("using default configuration", "error", err)
		cfg = config.DefaultConfig()
	}

	lvl, err := config.ParseLogLevel(cfg.LogLevel)
	if err == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	return cfg, logger
}

// initSession returns the handle of a new session for model, or 0.
func initSession(model string) bridge.Handle {
	cfg, logger := loadConfig()

	sess, err := bridge.Init(newLoader(cfg), model,
		bridge.WithRegistry(wavbridge.NewWAVRegistry(wavbridge.RegistryOptions{
			StrictExtensible: cfg.Decode.StrictExtensible,
		})),
		bridge.WithEngineOptions(cfg.Engine.Options()),
		bridge.WithAutoGain(cfg.Decode.AutoGain),
		bridge.WithLogger(logger),
	)
	if err != nil {
		logger.Error("whisper_bridge_init failed", "model", model, "error", err)
		return 0
	}

	return sessions.Put(sess)
}

// transcribe returns the transcript or the error text for h.
func transcribe(h bridge.Handle, path string) string {
	sess, ok := sessions.Get(h)
	if !ok {
		return bridge.ErrNilSession.Error()
	}

	return sess.Transcribe(path).String()
}

func release(h bridge.Handle) {
	if sess := sessions.Delete(h); sess != nil {
		_ = sess.Close()
	}
}

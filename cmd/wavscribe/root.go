// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/wavbridge"
	"github.com/ik5/wavbridge/audio"
	"github.com/ik5/wavbridge/bridge"
	"github.com/ik5/wavbridge/engine"
	"github.com/ik5/wavbridge/engine/openai"
	"github.com/ik5/wavbridge/internal/config"
	"github.com/ik5/wavbridge/internal/metrics"
)

var (
	cfgFile   string
	envFile   string
	activeCfg config.Config
	loaded    bool
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "wavscribe",
		Short:         "Decode audio files and transcribe them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}

			cfg, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}

			activeCfg = cfg
			loaded = true
			setupLogger(cfg.LogLevel)

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional .env file loaded before the config")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newTranscribeCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}

	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if !loaded {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}

	return activeCfg, nil
}

func newRegistry(cfg config.Config) *audio.Registry {
	return wavbridge.NewRegistry(wavbridge.RegistryOptions{
		StrictExtensible: cfg.Decode.StrictExtensible,
	})
}

func newLoader(cfg config.Config) (engine.Loader, error) {
	switch cfg.Engine.Backend {
	case config.BackendOpenAI:
		return openai.NewLoader(openai.Config{
			BaseURL: cfg.Engine.BaseURL,
			APIKey:  cfg.Engine.APIKey,
			Timeout: cfg.Engine.Timeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Engine.Backend)
	}
}

// openSession builds a bridge session from cfg. m may be nil.
func openSession(cfg config.Config, m *metrics.Metrics) (*bridge.Session, error) {
	loader, err := newLoader(cfg)
	if err != nil {
		return nil, err
	}

	opts := []bridge.Option{
		bridge.WithRegistry(newRegistry(cfg)),
		bridge.WithEngineOptions(cfg.Engine.Options()),
		bridge.WithAutoGain(cfg.Decode.AutoGain),
		bridge.WithLogger(slog.Default()),
		bridge.WithMetrics(m),
	}

	return bridge.Init(loader, cfg.Engine.Model, opts...)
}

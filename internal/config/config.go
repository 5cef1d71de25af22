// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ik5/wavbridge/engine"
)

// EnvPrefix prefixes every environment override, e.g. WAVSCRIBE_ENGINE_MODEL.
const EnvPrefix = "WAVSCRIBE"

type Config struct {
	Engine   EngineConfig `mapstructure:"engine"`
	Decode   DecodeConfig `mapstructure:"decode"`
	Server   ServerConfig `mapstructure:"server"`
	LogLevel string       `mapstructure:"log_level"`
}

type EngineConfig struct {
	Backend        string `mapstructure:"backend"`
	Model          string `mapstructure:"model"`
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Language       string `mapstructure:"language"`
	Threads        int    `mapstructure:"threads"`
	Timestamps     bool   `mapstructure:"timestamps"`
	Translate      bool   `mapstructure:"translate"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type DecodeConfig struct {
	StrictExtensible bool `mapstructure:"strict_extensible"`
	AutoGain         bool `mapstructure:"auto_gain"`
}

type ServerConfig struct {
	ListenAddr  string `mapstructure:"listen_addr"`
	MaxUploadMB int    `mapstructure:"max_upload_mb"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// keys maps every config key to the flag that overrides it.
var keys = []struct {
	key  string
	flag string
}{
	{"engine.backend", "engine-backend"},
	{"engine.model", "engine-model"},
	{"engine.base_url", "engine-base-url"},
	{"engine.api_key", "engine-api-key"},
	{"engine.language", "engine-language"},
	{"engine.threads", "engine-threads"},
	{"engine.timestamps", "engine-timestamps"},
	{"engine.translate", "engine-translate"},
	{"engine.timeout_seconds", "engine-timeout-seconds"},
	{"decode.strict_extensible", "decode-strict-extensible"},
	{"decode.auto_gain", "decode-auto-gain"},
	{"server.listen_addr", "server-listen-addr"},
	{"server.max_upload_mb", "server-max-upload-mb"},
	{"log_level", "log-level"},
}

func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			Backend:        BackendOpenAI,
			Model:          "whisper-1",
			BaseURL:        "",
			APIKey:         "",
			Language:       engine.DefaultLanguage,
			Threads:        engine.DefaultThreads,
			TimeoutSeconds: 120,
		},
		Decode: DecodeConfig{
			StrictExtensible: false,
			AutoGain:         true,
		},
		Server: ServerConfig{
			ListenAddr:  ":8080",
			MaxUploadMB: 25,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("engine-backend", defaults.Engine.Backend, "Recognition backend (openai)")
	fs.String("engine-model", defaults.Engine.Model, "Model name or path handed to the backend")
	fs.String("engine-base-url", defaults.Engine.BaseURL, "Base URL of an OpenAI compatible server, e.g. http://localhost:8080/v1")
	fs.String("engine-api-key", defaults.Engine.APIKey, "API key for the backend")
	fs.String("engine-language", defaults.Engine.Language, "Spoken language, or auto")
	fs.Int("engine-threads", defaults.Engine.Threads, "Inference threads for local backends")
	fs.Bool("engine-timestamps", defaults.Engine.Timestamps, "Prefix segments with their time range")
	fs.Bool("engine-translate", defaults.Engine.Translate, "Translate to English instead of transcribing")
	fs.Int("engine-timeout-seconds", defaults.Engine.TimeoutSeconds, "Per request backend timeout, 0 for none")
	fs.Bool("decode-strict-extensible", defaults.Decode.StrictExtensible, "Honour the WAVE_FORMAT_EXTENSIBLE subtype GUID")
	fs.Bool("decode-auto-gain", defaults.Decode.AutoGain, "Boost very quiet recordings before recognition")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-upload-mb", defaults.Server.MaxUploadMB, "Largest accepted upload in MiB")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)

	if opts.Cmd != nil {
		fs := opts.Cmd.Flags()
		for _, k := range keys {
			f := fs.Lookup(k.flag)
			if f == nil {
				continue
			}

			if err := v.BindPFlag(k.key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", k.flag, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	if err := v.BindEnv("engine.api_key", EnvPrefix+"_ENGINE_API_KEY", "OPENAI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("wavscribe")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	backend, err := NormalizeBackend(cfg.Engine.Backend)
	if err != nil {
		return Config{}, err
	}
	cfg.Engine.Backend = backend

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("engine.backend", c.Engine.Backend)
	v.SetDefault("engine.model", c.Engine.Model)
	v.SetDefault("engine.base_url", c.Engine.BaseURL)
	v.SetDefault("engine.api_key", c.Engine.APIKey)
	v.SetDefault("engine.language", c.Engine.Language)
	v.SetDefault("engine.threads", c.Engine.Threads)
	v.SetDefault("engine.timestamps", c.Engine.Timestamps)
	v.SetDefault("engine.translate", c.Engine.Translate)
	v.SetDefault("engine.timeout_seconds", c.Engine.TimeoutSeconds)
	v.SetDefault("decode.strict_extensible", c.Decode.StrictExtensible)
	v.SetDefault("decode.auto_gain", c.Decode.AutoGain)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_upload_mb", c.Server.MaxUploadMB)
	v.SetDefault("log_level", c.LogLevel)
}

// Options converts the engine section to per run options.
func (c EngineConfig) Options() engine.Options {
	return engine.Options{
		Language:   c.Language,
		Threads:    c.Threads,
		Timestamps: c.Timestamps,
		Translate:  c.Translate,
	}
}

// Timeout is TimeoutSeconds as a duration.
func (c EngineConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ParseLogLevel maps a config string to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// LoadDotEnv reads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/wavbridge"
	"github.com/ik5/wavbridge/audio"
	"github.com/ik5/wavbridge/formats/wav"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Print the format of audio files",
		Long: "Print the resolved format of WAV files without decoding them. Other " +
			"containers are decoded and summarised.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			reg := newRegistry(cfg)
			out := cmd.OutOrStdout()

			var failed int
			for _, path := range args {
				var line string
				if wd, ok := wavDecoderFor(reg, path); ok {
					line, err = wavInfo(wd, path)
				} else {
					line, err = signalInfo(path, reg)
				}

				if err != nil {
					failed++
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}

				_, _ = fmt.Fprintf(out, "%s: %s\n", path, line)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}

			return nil
		},
	}
}

// wavDecoderFor returns the WAV decoder to describe path with: RIFF/WAVE
// content always, otherwise whatever the extension maps to.
func wavDecoderFor(reg *audio.Registry, path string) (wav.Decoder, bool) {
	if f, err := os.Open(path); err == nil {
		isWAV, _ := wavbridge.IsWAV(f)
		_ = f.Close()

		if isWAV {
			if wd, ok := reg.Get("wav"); ok {
				if d, ok := wd.(wav.Decoder); ok {
					return d, true
				}
			}

			return wav.Decoder{}, true
		}
	}

	dec, _ := reg.Lookup(path)
	d, ok := dec.(wav.Decoder)

	return d, ok
}

func wavInfo(d wav.Decoder, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", wav.ErrOpen, err)
	}
	defer f.Close()

	info, err := d.ReadInfo(f)
	if err != nil {
		return "", err
	}

	frames := info.Frames()

	return fmt.Sprintf("%s frames=%d duration=%s", info.Format, frames, duration(frames, int(info.Format.SampleRate))), nil
}

func signalInfo(path string, reg *audio.Registry) (string, error) {
	sig, err := wavbridge.DecodeFile(reg, path)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("channels=1 rate=%d bits=%d frames=%d duration=%s",
		sig.Format.SampleRate, sig.SourceBitDepth, len(sig.Data), duration(len(sig.Data), sig.Format.SampleRate)), nil
}

func duration(frames, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}

	return (time.Duration(frames) * time.Second / time.Duration(rate)).Round(time.Millisecond)
}

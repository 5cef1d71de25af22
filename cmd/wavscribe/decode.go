// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/wavbridge"
	"github.com/ik5/wavbridge/audio"
	"github.com/ik5/wavbridge/formats/wav"
)

func newDecodeCmd() *cobra.Command {
	var gain bool

	cmd := &cobra.Command{
		Use:   "decode <in> <out.wav>",
		Short: "Decode an audio file to 16-bit mono WAV",
		Long: "Decode any supported container to the mono signal the recogniser " +
			"sees and write it as 16-bit PCM at the source sample rate.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			in, out := args[0], args[1]

			sig, err := wavbridge.DecodeFile(newRegistry(cfg), in)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			if gain {
				sig.Data = audio.AutoGain(sig.Data)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}

			if err := wav.WriteMono16(f, sig); err != nil {
				f.Close()
				return fmt.Errorf("%s: %w", out, err)
			}

			if err := f.Close(); err != nil {
				return err
			}

			slog.Debug("decoded", "in", in, "out", out, "frames", len(sig.Data), "sample_rate", sig.Format.SampleRate)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames at %d Hz\n", out, len(sig.Data), sig.Format.SampleRate)

			return nil
		},
	}

	cmd.Flags().BoolVar(&gain, "gain", false, "Apply the quiet signal boost before writing")

	return cmd
}

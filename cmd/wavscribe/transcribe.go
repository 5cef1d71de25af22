// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTranscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <file>...",
		Short: "Transcribe audio files with the configured engine",
		Long: "Open one engine session and transcribe the files in order. The " +
			"transcript goes to stdout; failures are reported on stderr.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			sess, err := openSession(cfg, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			prefix := len(args) > 1

			var failed int
			for _, path := range args {
				res := sess.Transcribe(path)
				if !res.OK() {
					failed++
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, res.Err)
					continue
				}

				if prefix {
					_, _ = fmt.Fprintf(out, "%s: %s\n", path, res.Text)
				} else {
					_, _ = fmt.Fprintln(out, res.Text)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}

			return nil
		},
	}
}

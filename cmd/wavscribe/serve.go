// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ik5/wavbridge/internal/metrics"
	"github.com/ik5/wavbridge/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the wavscribe HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := metrics.New(reg)

			sess, err := openSession(cfg, m)
			if err != nil {
				return err
			}
			defer sess.Close()

			srv := server.New(sess, server.Options{
				Logger:         slog.Default(),
				Metrics:        m,
				Gatherer:       reg,
				MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx, cfg.Server.ListenAddr)
		},
	}
}

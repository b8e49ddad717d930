package main

import (
	"github.com/spf13/cobra"

	"github.com/vytor/hippomemory/internal/api"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/metrics"
)

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web client's static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logger.FromContext(ctx)
			log.Info("serving %s (env=%s)", a.cfg.WebRoot, a.cfg.Env)

			srv := &api.Server{
				WebRoot:            a.cfg.WebRoot,
				Production:         a.cfg.Production(),
				RateLimitPerMinute: a.cfg.RateLimitPerMinute,
				Metrics:            metrics.New(),
			}
			return srv.ListenAndServe(ctx, a.cfg.Addr())
		},
	}
	cmd.Flags().IntVarP(&a.cfg.Port, "port", "p", a.cfg.Port, "listen port")
	cmd.Flags().StringVar(&a.cfg.WebRoot, "web-root", a.cfg.WebRoot, "directory of static files")
	return cmd
}

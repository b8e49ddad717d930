package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/hippomemory/internal/engine"
	"github.com/vytor/hippomemory/internal/terminal"
	"github.com/vytor/hippomemory/internal/worker"
)

func (a *app) playCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play today's puzzle in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			loop := worker.NewLoop(0)
			loop.Start(ctx)
			defer loop.Stop()

			out := cmd.OutOrStdout()
			presenter := terminal.NewPresenter(out)
			eng := engine.New(rt.provider, rt.progress, loop,
				engine.WithPresenter(presenter),
				engine.WithClock(a.now),
				engine.WithRevealInterval(time.Duration(a.cfg.RevealIntervalMS)*time.Millisecond),
			)
			return terminal.NewSession(eng, presenter, out).Run(ctx, cmd.InOrStdin(), loop)
		},
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vytor/hippomemory/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(config.Load()).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, opts := NewRootCommand()
	if err := execute(ctx, root, opts); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/geolens"
)

// Run executes the serve command. It blocks until the process is
// interrupted or the surrounding context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	deps.Server.Addr = c.Addr
	if err := deps.Server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", deps.Server.URL())

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(deps.Stdout, "Shutting down")

	// Stop accepting requests before draining the job queue, so nothing
	// can enqueue into a queue that is closing.
	err := deps.Server.Close()
	if deps.Queue != nil {
		deps.Queue.Close()
	}
	return err
}

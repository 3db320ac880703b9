package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// watchInterrupts handles Ctrl+C and SIGTERM for a run.
// The returned function stops watching.
func watchInterrupts(cancel context.CancelFunc, out io.Writer) (stop func()) {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	stopHandling := handleInterrupts(sigChan, cancel, out, os.Exit)
	return func() {
		signal.Stop(sigChan)
		stopHandling()
	}
}

// handleInterrupts cancels the run on the first signal, letting the current
// file finish or roll back. A second signal calls exit immediately; the
// server rolls back the open transaction when the connection drops.
func handleInterrupts(signals <-chan os.Signal, cancel context.CancelFunc, out io.Writer, exit func(int)) (stop func()) {
	done := make(chan struct{})

	go func() {
		select {
		case <-signals:
		case <-done:
			return
		}
		fmt.Fprintln(out, "\n[INTERRUPT] Finishing the current file, press Ctrl+C again to abort...")
		cancel()

		select {
		case <-signals:
			fmt.Fprintln(out, "[INTERRUPT] Aborted")
			exit(pgload.ExitGeneralError)
		case <-done:
		}
	}()

	return func() { close(done) }
}

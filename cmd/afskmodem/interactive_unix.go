//go:build !windows

package main

import (
	"context"

	"github.com/kb9vln/afsk1200/internal/afsk"
	"github.com/kb9vln/afsk1200/internal/monitor"
)

// runKeystrokeMonitor drives the "monitor" subcommand's raw-mode terminal:
// q quits the process, f forces a flush of the transmit sequencer, and c
// clears the RXFIFO_OVERRUN status bit. It returns when ctx is cancelled or
// the keystroke reader itself errors (e.g. the controlling terminal went
// away).
func runKeystrokeMonitor(ctx context.Context, modem *afsk.Modem, cancel context.CancelFunc) error {
	keys, err := monitor.OpenKeystrokes()
	if err != nil {
		return err
	}
	defer keys.Close()

	done := make(chan error, 1)
	go func() {
		for {
			b, err := keys.Next()
			if err != nil {
				done <- err
				return
			}
			switch b {
			case 'q', 'Q':
				cancel()
				done <- nil
				return
			case 'f', 'F':
				modem.Flush()
			case 'c', 'C':
				modem.ClearError()
			}
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		return err
	}
}

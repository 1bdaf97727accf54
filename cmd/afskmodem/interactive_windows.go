//go:build windows

package main

import (
	"context"
	"errors"

	"github.com/kb9vln/afsk1200/internal/afsk"
)

// runKeystrokeMonitor's raw-mode terminal reader is backed by
// github.com/pkg/term, which does not support Windows; the "monitor"
// subcommand is unavailable there.
func runKeystrokeMonitor(ctx context.Context, modem *afsk.Modem, cancel context.CancelFunc) error {
	return errors.New("afskmodem: the monitor subcommand is not supported on windows")
}

//go:build hw

package peripheral

import (
	"context"

	"github.com/jochenvg/go-udev"
)

// SoundDeviceWatcher notifies onChange whenever a USB sound card appears or
// disappears, so the CLI can reopen its SoundCard without a restart.
// Generalizes the teacher's CM108 PTT code, which must itself locate its
// USB HID device among possibly several audio adapters.
type SoundDeviceWatcher struct {
	cancel context.CancelFunc
}

// WatchSoundDevices starts watching udev's "sound" subsystem in the
// background until ctx is cancelled or the returned watcher is stopped.
func WatchSoundDevices(ctx context.Context, onChange func(action, name string)) (*SoundDeviceWatcher, error) {
	u := udev.Udev{}
	mon := u.NewMonitorFromNetlink("udev")
	if err := mon.FilterAddMatchSubsystem("sound"); err != nil {
		return nil, err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	ch, err := mon.DeviceChan(watchCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		for dev := range ch {
			onChange(dev.Action(), dev.Sysname())
		}
	}()

	return &SoundDeviceWatcher{cancel: cancel}, nil
}

func (w *SoundDeviceWatcher) Close() error {
	w.cancel()
	return nil
}

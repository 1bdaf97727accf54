//go:build hw

package main

import (
	"context"
	"sync"

	"github.com/kb9vln/afsk1200/internal/afsk"
	"github.com/kb9vln/afsk1200/internal/config"
	"github.com/kb9vln/afsk1200/internal/peripheral"
	"github.com/kb9vln/afsk1200/internal/ptt"
)

// openPeripherals opens the real sound card and PTT line for a build
// tagged hw, the production counterpart to hardware_file.go's recorded/
// generated-file stand-ins used for off-device development and testing.
// The sound card is wrapped in a hotplugCard so a USB adapter can be
// unplugged and replugged without restarting the process, and armed with
// the diagnostic ADC/DAC strobe pair when the configured GPIO lines are
// available.
func openPeripherals(cfg config.Config, modem *afsk.Modem) (peripheral.ADCSource, peripheral.DACDriver, ptt.Driver, error) {
	card, err := newHotplugCard(cfg.SoundDevice, modem, cfg.GPIOChip, cfg.StrobeEntryLine, cfg.StrobeExitLine)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.HamlibModel != 0 {
		rig, err := ptt.OpenHamlib(cfg.HamlibModel, cfg.HamlibDevice)
		if err != nil {
			card.Close()
			return nil, nil, nil, err
		}
		return card, card, rig, nil
	}

	gpio, err := ptt.OpenGPIO(cfg.GPIOChip, cfg.PTTLine)
	if err != nil {
		card.Close()
		return nil, nil, nil, err
	}
	return card, card, gpio, nil
}

// hotplugCard wraps peripheral.SoundCard behind a mutex and reopens the
// configured sound device whenever any sound device is hot-plugged in, using
// go-udev to notice the event the way the teacher's CM108 PTT code must
// locate its USB HID device among possibly several audio adapters.
type hotplugCard struct {
	mu      sync.Mutex
	card    *peripheral.SoundCard
	modem   *afsk.Modem
	device  string
	strobe  *peripheral.Strobe
	watcher *peripheral.SoundDeviceWatcher
}

func newHotplugCard(device string, modem *afsk.Modem, gpioChip string, adcLine, dacLine int) (*hotplugCard, error) {
	card, err := peripheral.OpenSoundCard(device, modem)
	if err != nil {
		return nil, err
	}

	// The strobe pair is a diagnostic nicety: if the configured GPIO lines
	// aren't available, run without instrumentation rather than failing
	// the whole peripheral set over it.
	var strobe *peripheral.Strobe
	if s, err := peripheral.OpenStrobe(gpioChip, adcLine, dacLine); err == nil {
		strobe = s
		card.AttachStrobe(strobe)
	}

	hc := &hotplugCard{card: card, modem: modem, device: device, strobe: strobe}

	watcher, err := peripheral.WatchSoundDevices(context.Background(), hc.onChange)
	if err != nil {
		card.Close()
		if strobe != nil {
			strobe.Close()
		}
		return nil, err
	}
	hc.watcher = watcher
	return hc, nil
}

// onChange reopens the configured sound card whenever udev reports an "add"
// event in the sound subsystem, whether that is a fresh plug-in after a USB
// removal or an adapter's very first enumeration racing this process's
// startup. The event's device name is not compared with the configured one.
func (hc *hotplugCard) onChange(action, _ string) {
	if action != "add" {
		return
	}
	card, err := peripheral.OpenSoundCard(hc.device, hc.modem)
	if err != nil {
		return
	}
	if hc.strobe != nil {
		card.AttachStrobe(hc.strobe)
	}

	hc.mu.Lock()
	old := hc.card
	hc.card = card
	hc.mu.Unlock()

	old.Close()
}

func (hc *hotplugCard) current() *peripheral.SoundCard {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return hc.card
}

func (hc *hotplugCard) Run(onSample func(x int8)) error { return hc.current().Run(onSample) }
func (hc *hotplugCard) Enable()                         { hc.current().Enable() }
func (hc *hotplugCard) Disable()                        { hc.current().Disable() }

func (hc *hotplugCard) Close() error {
	hc.watcher.Close()
	if hc.strobe != nil {
		hc.strobe.Close()
	}
	return hc.current().Close()
}

//go:build hw

package peripheral

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/kb9vln/afsk1200/internal/afsk"
)

// SoundCard is a portaudio-backed ADCSource and DACDriver pair sharing one
// full-duplex stream, generalizing the teacher's OSS/ALSA audio.go to the
// cross-platform portaudio binding the teacher's go.mod already declares.
// Only one direction is ever active at a time, matching this modem's
// half-duplex Non-goal.
type SoundCard struct {
	stream *portaudio.Stream
	modem  *afsk.Modem
	strobe *Strobe

	onSample func(x int8)
	sending  bool
}

// AttachStrobe arms s to toggle around every ADCSample/DACSample call made
// from the audio callback, or disarms instrumentation entirely if s is nil.
func (sc *SoundCard) AttachStrobe(s *Strobe) { sc.strobe = s }

// OpenSoundCard opens the named input/output device (empty string for the
// system default) at afsk.SampleRate and binds it to modem.
func OpenSoundCard(deviceName string, modem *afsk.Modem) (*SoundCard, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("peripheral: portaudio init: %w", err)
	}

	sc := &SoundCard{modem: modem}

	dev, err := resolveDevice(deviceName)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	params := portaudio.HighLatencyParameters(dev, dev)
	params.Input.Channels = 1
	params.Output.Channels = 1
	params.SampleRate = float64(afsk.SampleRate)
	params.FramesPerBuffer = 256

	stream, err := portaudio.OpenStream(params, sc.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("peripheral: open stream: %w", err)
	}
	sc.stream = stream
	return sc, stream.Start()
}

func resolveDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" || name == "default" {
		host, err := portaudio.DefaultHostApi()
		if err != nil {
			return nil, err
		}
		return host.DefaultInputDevice, nil
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("peripheral: sound device %q not found", name)
}

// callback runs on the portaudio audio thread: every input sample is fed
// to ADCSample, and while sending is true every output sample is pulled
// from DACSample, matching the one-callback-per-direction contract of
// afsk_adc_isr/afsk_dac_isr.
func (sc *SoundCard) callback(in, out []int8) {
	for i, x := range in {
		if sc.strobe != nil {
			sc.strobe.AdcOn()
		}
		sc.modem.ADCSample(x)
		if sc.strobe != nil {
			sc.strobe.AdcOff()
		}

		if sc.sending {
			if sc.strobe != nil {
				sc.strobe.DacOn()
			}
			out[i] = int8(int(sc.modem.DACSample()) - 128)
			if sc.strobe != nil {
				sc.strobe.DacOff()
			}
		} else {
			out[i] = 0
		}
	}
}

func (sc *SoundCard) Enable()  { sc.sending = true }
func (sc *SoundCard) Disable() { sc.sending = false }

func (sc *SoundCard) Run(onSample func(x int8)) error {
	sc.onSample = onSample
	return nil
}

func (sc *SoundCard) Close() error {
	if err := sc.stream.Close(); err != nil {
		return err
	}
	portaudio.Terminate()
	return nil
}

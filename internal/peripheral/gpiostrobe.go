//go:build hw

package peripheral

import (
	"github.com/warthog618/go-gpiocdev"
)

// Strobe drives the optional diagnostic GPIO pair spec.md §6 describes: one
// line toggled high on ADC-sample-callback entry and low on exit, the other
// the same for the DAC-sample-callback, so a logic analyzer can measure
// interrupt occupancy. Generalizes the teacher's CM108 USB-HID PTT GPIO
// handling (src/cm108.go) to a Linux GPIO character device.
type Strobe struct {
	adc, dac *gpiocdev.Line
}

// OpenStrobe requests adcLine and dacLine as outputs on chip.
func OpenStrobe(chip string, adcLine, dacLine int) (*Strobe, error) {
	adc, err := gpiocdev.RequestLine(chip, adcLine, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	dac, err := gpiocdev.RequestLine(chip, dacLine, gpiocdev.AsOutput(0))
	if err != nil {
		adc.Close()
		return nil, err
	}
	return &Strobe{adc: adc, dac: dac}, nil
}

// AdcOn marks entry into ADCSample processing.
func (s *Strobe) AdcOn() { s.adc.SetValue(1) }

// AdcOff marks exit from ADCSample processing.
func (s *Strobe) AdcOff() { s.adc.SetValue(0) }

// DacOn marks entry into DACSample processing.
func (s *Strobe) DacOn() { s.dac.SetValue(1) }

// DacOff marks exit from DACSample processing.
func (s *Strobe) DacOff() { s.dac.SetValue(0) }

func (s *Strobe) Close() error {
	s.adc.Close()
	return s.dac.Close()
}

//go:build hw

package ptt

import "github.com/warthog618/go-gpiocdev"

// GPIO keys a transmitter through a GPIO character device line, the same
// pin convention the teacher's CM108 driver uses for a USB-audio HID PTT
// line, generalized to a Linux GPIO chip.
type GPIO struct {
	line *gpiocdev.Line
}

// OpenGPIO requests line on chip as an output, initially off.
func OpenGPIO(chip string, line int) (*GPIO, error) {
	l, err := gpiocdev.RequestLine(chip, line, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	return &GPIO{line: l}, nil
}

func (g *GPIO) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	return g.line.SetValue(v)
}

func (g *GPIO) Close() error { return g.line.Close() }

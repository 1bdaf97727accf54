//go:build !windows

package monitor

import "github.com/pkg/term"

// Keystrokes puts the controlling terminal into raw mode so the monitor
// subcommand can react to single keystrokes (q quit, f force flush, c
// clear RXFIFO_OVERRUN) without waiting for Enter, the same immediate
// keystroke affordance the teacher's interactive tools assume.
type Keystrokes struct {
	t *term.Term
}

// OpenKeystrokes opens /dev/tty in raw mode.
func OpenKeystrokes() (*Keystrokes, error) {
	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return nil, err
	}
	return &Keystrokes{t: t}, nil
}

// Next blocks for the next single keystroke.
func (k *Keystrokes) Next() (byte, error) {
	buf := make([]byte, 1)
	if _, err := k.t.Read(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Close restores the terminal to its previous mode.
func (k *Keystrokes) Close() error {
	k.t.Restore()
	return k.t.Close()
}

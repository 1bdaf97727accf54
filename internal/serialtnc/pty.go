// Package serialtnc exposes a Modem's byte-stream facade as a KISS-framed
// serial TNC on a pseudo-terminal, generalizing the teacher's
// src/kissserial.go (which does the same thing over a real serial device)
// to github.com/creack/pty so any KISS-speaking packet application —
// direwolf, Xastir, soundmodem clients — can attach without special
// hardware.
package serialtnc

import (
	"io"
	"os"

	"github.com/creack/pty"

	"github.com/kb9vln/afsk1200/internal/afsk"
)

// TNC bridges a PTY's raw byte stream to a Modem's deframed byte stream,
// translating KISS data frames to and from the AX.25 payload bytes the
// Modem itself reads and writes.
type TNC struct {
	modem   *afsk.Modem
	pty     *os.File
	tty     *os.File
	onFrame    func(payload []byte)
	onTransmit func(payload []byte)
}

// OnFrame registers fn to be called, on the RunRX goroutine, with every
// byte group modem.Read returns before it is KISS-framed and written to
// the PTY — the hook the CLI uses to append each received chunk to the
// decode log and the live WebSocket feed.
func (t *TNC) OnFrame(fn func(payload []byte)) { t.onFrame = fn }

// OnTransmit registers fn to be called, on the RunTX goroutine, with each
// decoded KISS frame's payload just before it is handed to modem.Write.
func (t *TNC) OnTransmit(fn func(payload []byte)) { t.onTransmit = fn }

// Open allocates a PTY pair. TTYName returns the slave side's path, the one
// a client application should open (e.g. pass to `kissattach`).
func Open(modem *afsk.Modem) (*TNC, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, err
	}
	return &TNC{modem: modem, pty: ptmx, tty: tty}, nil
}

// TTYName returns the path of the PTY's slave side.
func (t *TNC) TTYName() string { return t.tty.Name() }

// Close releases both sides of the PTY.
func (t *TNC) Close() error {
	err1 := t.pty.Close()
	err2 := t.tty.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// RunRX reads decoded bytes from modem and writes them to the PTY as
// KISS-framed data frames, one frame per call to modem.Read returning at
// least one byte. It runs until the PTY write fails.
func (t *TNC) RunRX() error {
	buf := make([]byte, 256)
	for {
		n := t.modem.Read(buf)
		if n == 0 {
			continue
		}
		if t.onFrame != nil {
			t.onFrame(buf[:n])
		}
		if _, err := t.pty.Write(encodeKISSFrame(buf[:n])); err != nil {
			return err
		}
	}
}

// RunTX reads KISS-framed bytes from the PTY, deframes them, and writes each
// decoded data frame's payload to modem for transmission. It runs until the
// PTY read returns io.EOF or another error.
func (t *TNC) RunTX() error {
	var dec kissDecoder
	raw := make([]byte, 256)
	for {
		n, err := t.pty.Read(raw)
		for i := 0; i < n; i++ {
			if payload, ok := dec.push(raw[i]); ok {
				if t.onTransmit != nil {
					t.onTransmit(payload)
				}
				t.modem.Write(payload)
				t.modem.Flush()
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Package ptt provides the "radio PTT driver" external collaborator
// spec.md §1 names: whatever keys the transmitter on while the modem is
// sending and releases it afterward.
package ptt

// Driver keys a transmitter on or off.
type Driver interface {
	Set(on bool) error
	Close() error
}

// Null is a Driver that does nothing, for bench testing without a radio.
type Null struct{}

func (Null) Set(bool) error { return nil }
func (Null) Close() error   { return nil }

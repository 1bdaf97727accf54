//go:build hw

package ptt

import "github.com/xylo04/goHamlib"

// Hamlib keys a transmitter through rig control, the purpose the teacher's
// go.mod declares this dependency for ("HAMLIB support... for PTT").
type Hamlib struct {
	rig *goHamlib.Rig
}

// OpenHamlib opens rig model on the given device path (e.g. a serial port
// or rigctld network address).
func OpenHamlib(model int, device string) (*Hamlib, error) {
	rig := &goHamlib.Rig{}
	if err := rig.Init(model); err != nil {
		return nil, err
	}
	rig.SetConf("rig_pathname", device)
	if err := rig.Open(); err != nil {
		return nil, err
	}
	return &Hamlib{rig: rig}, nil
}

func (h *Hamlib) Set(on bool) error {
	return h.rig.SetPTT(goHamlib.VFOCurr, on)
}

func (h *Hamlib) Close() error {
	h.rig.Close()
	return nil
}

package afsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// pumpLoopback drives m's DAC output straight back into its own ADC input —
// "infinite signal-to-noise ratio" per the round-trip law — until the
// transmit sequencer finishes, and returns how many samples were fed.
func pumpLoopback(t *testing.T, m *Modem, maxSamples int) int {
	t.Helper()
	n := 0
	for n < maxSamples {
		sample := m.DACSample()
		m.ADCSample(int8(int(sample) - 128))
		n++
		if !m.mod.Sending() {
			return n
		}
	}
	t.Fatalf("transmit sequencer did not finish within %d samples", maxSamples)
	return n
}

func newLoopbackModem(t *testing.T, cfg Config) (*Modem, *fakeClock, *fakeDAC) {
	t.Helper()
	clock := &fakeClock{}
	dac := &fakeDAC{}
	m := NewModem(cfg, clock, dac)
	return m, clock, dac
}

func Test_Modem_roundTrip_noEscapes(t *testing.T) {
	cfg := DefaultConfig()
	m, _, _ := newLoopbackModem(t, cfg)

	payload := []byte("HI")
	m.Write(payload)
	pumpLoopback(t, m, 20000)

	out := make([]byte, 16)
	n := m.Read(out)
	got := out[:n]

	assert.Equal(t, byte(hdlcFlag), got[0])
	assert.Equal(t, byte(hdlcFlag), got[n-1])
	assert.Equal(t, payload, got[1:n-1])
}

func Test_Modem_roundTrip_escapedFlagByte(t *testing.T) {
	cfg := DefaultConfig()
	m, _, _ := newLoopbackModem(t, cfg)

	// Pre-escaped payload per the transmit contract: a literal 0x7E must
	// be preceded by AX25_ESC in tx_fifo.
	m.Write([]byte{ax25Esc, hdlcFlag, 0x41})
	pumpLoopback(t, m, 20000)

	out := make([]byte, 16)
	n := m.Read(out)
	got := out[:n]

	assert.Equal(t, []byte{hdlcFlag, ax25Esc, hdlcFlag, 0x41, hdlcFlag}, got)
}

func Test_Modem_rxFIFOOverrun_setsStatusAndRecoversAfterClearError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RXQueueCapacity = 2
	m, _, _ := newLoopbackModem(t, cfg)

	m.Write([]byte{0x41, 0x42, 0x43, 0x44})
	pumpLoopback(t, m, 20000)

	assert.NotZero(t, m.Error()&StatusRXFIFOOverrun)

	out := make([]byte, 8)
	n := m.Read(out)
	assert.LessOrEqual(t, n, cfg.RXQueueCapacity)

	m.ClearError()
	assert.Zero(t, m.Error())

	cfg2 := DefaultConfig()
	m2, _, _ := newLoopbackModem(t, cfg2)
	m2.Write([]byte{0x55})
	pumpLoopback(t, m2, 20000)
	out2 := make([]byte, 8)
	n2 := m2.Read(out2)
	assert.Equal(t, []byte{hdlcFlag, 0x55, hdlcFlag}, out2[:n2])
}

func Test_Modem_writeThenFlush_disablesDACExactlyOnce(t *testing.T) {
	cfg := DefaultConfig()
	m, _, dac := newLoopbackModem(t, cfg)

	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i)
	}
	m.Write(payload)
	assert.Equal(t, 1, dac.enables)

	// Drive DACSample directly (no loopback needed: Flush only cares that
	// sending eventually goes false) until the sequencer stops.
	for i := 0; i < 2_000_000 && m.mod.Sending(); i++ {
		m.DACSample()
	}

	m.Flush()
	assert.False(t, m.mod.Sending())
	assert.Equal(t, 1, dac.disables)
}

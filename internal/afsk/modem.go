package afsk

// Modem wires the demodulator, HDLC receive framer, modulator/transmit
// sequencer and byte queues into the external byte-stream facade:
// Read/Write/Flush/Error/ClearError. A Modem is driven by three external
// collaborators it never calls directly: an ADC driver feeding ADCSample,
// a DAC driver pulling DACSample and obeying Enable/Disable through the
// DACSink passed at construction, and the Clock used by Read's timeout.
type Modem struct {
	demod *Demodulator
	mod   *Modulator

	rx *byteQueue
	tx *byteQueue

	status statusFlags
	clock  Clock
	dac    DACSink

	cfg Config
}

// NewModem builds a Modem from cfg. It panics if cfg.DACSampleRate is not a
// multiple of BitRate, mirroring the original's compile-time STATIC_ASSERT.
func NewModem(cfg Config, clock Clock, dac DACSink) *Modem {
	if cfg.DACSampleRate%BitRate != 0 {
		panic("afsk: DACSampleRate must be a multiple of BitRate")
	}

	m := &Modem{cfg: cfg, clock: clock, dac: dac}
	m.rx = newByteQueue(cfg.RXQueueCapacity)
	m.tx = newByteQueue(cfg.TXQueueCapacity)
	framer := newHDLCReceiver(m.rx)
	m.demod = newDemodulator(cfg.Filter, framer)
	m.mod = newModulator(cfg.DACSampleRate, cfg.PreambleLenMS, cfg.TrailerLenMS, m.tx)
	return m
}

// ADCSample must be called once per CONFIG_SAMPLE_RATE tick by the ADC
// driver with the latest signed 8-bit sample. It never blocks or allocates.
func (m *Modem) ADCSample(x int8) {
	if !m.demod.Sample(x) {
		m.status.set(StatusRXFIFOOverrun)
	}
}

// DACSample must be called once per CONFIG_DAC_SAMPLE_RATE tick by the DAC
// driver; it returns the next output sample and disables the driver itself
// once the trailer has fully drained.
func (m *Modem) DACSample() uint8 {
	sample, stop := m.mod.Sample()
	if stop {
		m.dac.Disable()
	}
	return sample
}

// Read copies up to len(buf) decoded bytes into buf and returns the count
// actually copied. Behavior depends on cfg.RXTimeoutMS:
//
//   - 0: non-blocking. Returns immediately with whatever is already queued,
//     possibly zero bytes.
//   - negative: blocks until len(buf) bytes have been collected.
//   - positive: blocks on each byte for up to that many milliseconds since
//     the read attempt on that byte began; returns early, with fewer than
//     len(buf) bytes, on the first timeout.
func (m *Modem) Read(buf []byte) int {
	n := 0
	switch {
	case m.cfg.RXTimeoutMS == 0:
		for n < len(buf) {
			b, ok := m.rx.TryPop()
			if !ok {
				break
			}
			buf[n] = b
			n++
		}
	case m.cfg.RXTimeoutMS < 0:
		for n < len(buf) {
			for {
				if b, ok := m.rx.TryPop(); ok {
					buf[n] = b
					n++
					break
				}
				m.clock.Relax()
			}
		}
	default:
		for n < len(buf) {
			deadline := m.clock.NowMS() + int64(m.cfg.RXTimeoutMS)
			for {
				if b, ok := m.rx.TryPop(); ok {
					buf[n] = b
					n++
					break
				}
				if m.clock.NowMS() >= deadline {
					return n
				}
				m.clock.Relax()
			}
		}
	}
	return n
}

// Write enqueues every byte of buf onto tx_fifo, blocking while it is full,
// and calls the transmit sequencer's start/extend operation once per byte —
// not once per call — so that writing several bytes in separate calls
// cannot shrink the trailer below its configured length. Enable is called
// on the DAC driver exactly when a call transitions the sequencer from
// idle to sending.
func (m *Modem) Write(buf []byte) int {
	for _, b := range buf {
		for !m.tx.TryPush(b) {
			m.clock.Relax()
		}
		if m.mod.txStart() {
			m.dac.Enable()
		}
	}
	return len(buf)
}

// Flush blocks until the transmit sequencer has finished sending, including
// its trailer.
func (m *Modem) Flush() {
	for m.mod.Sending() {
		m.clock.Relax()
	}
}

// Sending reports whether the transmit sequencer is currently active,
// without blocking. See Modulator.Sending for its synchronization caveat.
func (m *Modem) Sending() bool { return m.mod.Sending() }

// Error returns the current status bitmask.
func (m *Modem) Error() uint32 { return m.status.get() }

// ClearError resets the status bitmask to zero.
func (m *Modem) ClearError() { m.status.clear() }

package afsk

const (
	markFreq    = 1200
	spaceFreq   = 2200
	bitStuffLen = 5
)

// ByteSource is the transmit sequencer's view of the outgoing byte queue:
// tx_fifo in practice.
type ByteSource interface {
	TryPop() (byte, bool)
	Empty() bool
}

// Modulator is the DDS tone generator plus the transmit bit sequencer: it
// turns queued, pre-escaped bytes into a stream of 8-bit DAC samples,
// handling preamble/trailer flags, bit stuffing, and mark/space switching
// under NRZI.
type Modulator struct {
	markInc, spaceInc uint16
	dacSamplesPerBit  int
	preambleMS        int
	trailerMS         int

	phaseAcc, phaseInc uint16
	sampleCount        int
	txBit              byte
	currOut            byte
	bitStuff           bool
	stuffCnt           int
	sending            bool
	preambleLen        int
	trailerLen         int

	src ByteSource
}

func newModulator(dacSampleRate, preambleMS, trailerMS int, src ByteSource) *Modulator {
	m := &Modulator{
		dacSamplesPerBit: dacSampleRate / BitRate,
		markInc:          uint16(roundDiv(SinLen*markFreq, dacSampleRate)),
		spaceInc:         uint16(roundDiv(SinLen*spaceFreq, dacSampleRate)),
		preambleMS:       preambleMS,
		trailerMS:        trailerMS,
		src:              src,
	}
	m.phaseInc = m.markInc
	return m
}

func roundDiv(num, den int) int { return (num + den/2) / den }

// txStart arms the sequencer if it is idle and always refreshes the
// trailer length, matching afsk_txStart's per-byte-write call so that a
// second Write immediately after the first does not shrink the trailer.
// It reports whether this call transitioned the sequencer from idle to
// sending, which the caller (Modem.Write) uses to decide whether the DAC
// driver needs to be enabled. Lengths are in flag bytes, not bits or ms:
// ms * BitRate / 1000 gives bits, / 8 gives bytes, combined as /8000.
func (m *Modulator) txStart() (startedNow bool) {
	if !m.sending {
		m.phaseAcc = 0
		m.phaseInc = m.markInc
		m.stuffCnt = 0
		m.txBit = 0
		m.sending = true
		m.preambleLen = roundDiv(m.preambleMS*BitRate, 8000)
		startedNow = true
	}
	m.trailerLen = roundDiv(m.trailerMS*BitRate, 8000)
	return startedNow
}

// Sending reports whether the sequencer is still transmitting. This is an
// unsynchronized read by design: the field is owned by the DAC-sample
// context and only ever cleared there, and its external readers (Flush and
// Modem.Sending) only need to observe the eventual false transition, not a
// consistent snapshot of any other field.
func (m *Modulator) Sending() bool { return m.sending }

// Sample produces the next 8-bit DAC sample. stop reports that the
// transmission has ended and the caller should disable the DAC driver.
func (m *Modulator) Sample() (sample uint8, stop bool) {
	if m.sampleCount == 0 {
		if m.txBit == 0 {
			if m.src.Empty() && m.trailerLen == 0 {
				m.sending = false
				return 0, true
			}

			if !m.bitStuff {
				m.stuffCnt = 0
			}
			m.bitStuff = true

			switch {
			case m.preambleLen > 0:
				m.preambleLen--
				m.currOut = hdlcFlag
			case m.src.Empty():
				m.trailerLen--
				m.currOut = hdlcFlag
			default:
				b, _ := m.src.TryPop()
				m.currOut = b
			}

			if m.currOut == ax25Esc {
				if m.src.Empty() {
					m.sending = false
					return 0, true
				}
				b, _ := m.src.TryPop()
				m.currOut = b
			} else if m.currOut == hdlcFlag || m.currOut == hdlcReset {
				m.bitStuff = false
			}

			m.txBit = 0x01
		}

		if m.bitStuff && m.stuffCnt >= bitStuffLen {
			m.stuffCnt = 0
			m.phaseInc = m.switchTone()
		} else {
			if m.currOut&m.txBit != 0 {
				m.stuffCnt++
			} else {
				m.stuffCnt = 0
				m.phaseInc = m.switchTone()
			}
			m.txBit <<= 1
		}

		m.sampleCount = m.dacSamplesPerBit
	}

	m.phaseAcc = (m.phaseAcc + m.phaseInc) % SinLen
	m.sampleCount--
	return SinSample(int(m.phaseAcc)), false
}

func (m *Modulator) switchTone() uint16 {
	if m.phaseInc == m.markInc {
		return m.spaceInc
	}
	return m.markInc
}

package afsk

// Bit-sampler PLL constants: the phase accumulator runs at phaseBit units
// per sample, wrapping at phaseMax (one full bit period); an edge in the
// discriminator output nudges phase by phaseInc towards lock.
const (
	phaseBit  = 8
	phaseMax  = samplesPerBit * phaseBit // 64
	phaseInc  = 1
	phaseHalf = phaseMax / 2 // 32
)

// Demodulator turns a stream of signed 8-bit ADC samples into decoded data
// bits delivered one at a time to a hdlcReceiver. A single instance is
// driven from whatever context supplies ADC samples; see Modem.
type Demodulator struct {
	filter iirFilter
	delay  delayLine

	sampledBits byte // raw discriminator decisions, one per sample
	currPhase   int
	foundBits   byte // NRZI-encoded bits recovered at the locked bit rate

	framer *hdlcReceiver
}

func newDemodulator(profile FilterProfile, framer *hdlcReceiver) *Demodulator {
	return &Demodulator{filter: iirFilter{profile: profile}, framer: framer}
}

// Sample processes one ADC sample and returns false if the decoded byte it
// produced (if any) was rejected by the downstream queue.
func (d *Demodulator) Sample(x int8) bool {
	old := d.delay.pushPop(x)
	raw := int16((int32(old) * int32(x)) >> 2)
	y := d.filter.step(raw)

	d.sampledBits <<= 1
	if y > 0 {
		d.sampledBits |= 1
	}

	if edge(d.sampledBits) {
		if d.currPhase < phaseHalf {
			d.currPhase += phaseInc
		} else {
			d.currPhase -= phaseInc
		}
	}
	d.currPhase += phaseBit

	if d.currPhase < phaseMax {
		return true
	}
	d.currPhase -= phaseMax

	d.foundBits <<= 1
	if majority(d.sampledBits & 0x07) {
		d.foundBits |= 1
	}

	// NRZI: a data bit of 1 is no transition, 0 is a transition.
	data := !edge(d.foundBits)
	return d.framer.bit(data)
}

func edge(bits byte) bool {
	return (bits^(bits>>1))&1 != 0
}

// majority reports the 2-of-3 vote over the low three bits of b.
func majority(b byte) bool {
	switch b {
	case 0x07, 0x06, 0x05, 0x03:
		return true
	default:
		return false
	}
}

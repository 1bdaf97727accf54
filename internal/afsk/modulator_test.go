package afsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// txBits pumps n transmitted data bits out of m and reconstructs their
// values from the tone-switch pattern: under NRZI a held tone is a 1, a
// switch is a 0. txStart leaves the line on mark, the implicit "previous"
// tone the first transmitted bit is compared against.
func txBits(t *testing.T, m *Modulator, n int) []bool {
	t.Helper()
	bits := make([]bool, 0, n)
	prevInc := m.phaseInc
	for len(bits) < n {
		_, stop := m.Sample()
		if stop {
			t.Fatalf("modulator stopped early after %d bits", len(bits))
		}
		if m.sampleCount != m.dacSamplesPerBit-1 {
			continue // mid-bit sample, no new bit decision was made
		}
		bits = append(bits, m.phaseInc == prevInc)
		prevInc = m.phaseInc
	}
	return bits
}

func Test_Modulator_scenario1_singleZeroBytePrecededByFlag(t *testing.T) {
	queue := newByteQueue(8)
	queue.TryPush(0x00)
	m := newModulator(SampleRate, 7, 7, queue)
	assert.True(t, m.txStart())

	bits := txBits(t, m, 16)
	assert.Equal(t, flagBits(), bits[:8], "flag pattern must be emitted first")
	for _, b := range bits[8:] {
		assert.False(t, b, "0x00 payload must NRZI-toggle on every bit")
	}
}

func Test_Modulator_scenario2_escapedFlagByteIsSentAsDataNotFlag(t *testing.T) {
	queue := newByteQueue(8)
	queue.TryPush(ax25Esc)
	queue.TryPush(hdlcFlag)
	queue.TryPush(0x41)
	// No preamble/trailer: with tx_fifo non-empty the sequencer pops the
	// escape as its very first byte instead of emitting a flag.
	m := newModulator(SampleRate, 0, 0, queue)
	m.txStart()

	// AX25_ESC is consumed silently: the sequencer immediately pops the
	// byte behind it (0x7E) and transmits that instead, with bit stuffing
	// still enabled. 0x7E has six consecutive 1 bits, so this group is 9
	// bit decisions long: a 0, 5 plain 1s, a stuffed 0 that does not consume
	// a new data bit, then the remaining 2 data bits (1, 0).
	escapedFlagDataBits := txBits(t, m, 9)
	want := []bool{false, true, true, true, true, true, false, true, false}
	assert.Equal(t, want, escapedFlagDataBits)

	payloadBits := txBits(t, m, 8)
	assert.Equal(t, byteBitsLSBFirst(0x41), payloadBits)
}

func Test_Modulator_txStart_refreshesTrailerWithoutRestarting(t *testing.T) {
	queue := newByteQueue(8)
	m := newModulator(SampleRate, 7, 7, queue)

	assert.True(t, m.txStart())
	firstTrailer := m.trailerLen

	assert.False(t, m.txStart())
	assert.Equal(t, firstTrailer, m.trailerLen)
}

func Test_Modulator_bitStuffing_insertsZeroAfterFiveOnes(t *testing.T) {
	queue := newByteQueue(8)
	queue.TryPush(0xFF) // eight 1 bits in a row: must provoke a stuffed zero
	queue.TryPush(0x00)
	m := newModulator(SampleRate, 0, 0, queue)
	m.txStart()

	bits := txBits(t, m, 9) // 8 data bits + 1 stuffed bit
	for i := 0; i < 5; i++ {
		assert.True(t, bits[i], "bit %d should be an unstuffed 1", i)
	}
	assert.False(t, bits[5], "sixth transmitted bit must be the stuffed zero")
}

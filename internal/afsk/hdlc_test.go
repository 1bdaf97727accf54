package afsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// feedBits drives a hdlcReceiver with already-NRZI-decoded data bits in
// transmission order (LSB of each conceptual byte first), the same shape
// Demodulator.Sample hands it one bit at a time.
func feedBits(h *hdlcReceiver, bits []bool) {
	for _, b := range bits {
		h.bit(b)
	}
}

func flagBits() []bool {
	return []bool{false, true, true, true, true, true, true, false}
}

func byteBitsLSBFirst(b byte) []bool {
	bits := bitsLSBFirst(b)
	return bits[:]
}

func Test_hdlcReceiver_scenario3_twoFlagsByteFlag(t *testing.T) {
	sink := &sliceSink{}
	h := newHDLCReceiver(sink)

	feedBits(h, flagBits())
	feedBits(h, flagBits())
	feedBits(h, byteBitsLSBFirst(0x41))
	feedBits(h, flagBits())

	assert.Equal(t, []byte{0x7E, 0x7E, 0x41, 0x7E}, sink.bytes)
}

func Test_hdlcReceiver_scenario4_escapesFlagValuedDataByte(t *testing.T) {
	sink := &sliceSink{}
	h := newHDLCReceiver(sink)

	// A data byte whose value equals HDLC_FLAG (0x7E) must have been bit
	// stuffed on the wire to avoid looking like a real flag; stuff a 0
	// after the fifth of its six consecutive 1 bits (LSB-first: 0 1 1 1 1
	// 1 1 0), matching what the transmit sequencer would have produced.
	dataBits := byteBitsLSBFirst(0x7E)
	var stuffed []bool
	stuffed = append(stuffed, dataBits[:6]...)
	stuffed = append(stuffed, false) // stuffed zero after five consecutive ones
	stuffed = append(stuffed, dataBits[6:]...)

	feedBits(h, flagBits())
	feedBits(h, stuffed)
	feedBits(h, byteBitsLSBFirst(0x41))
	feedBits(h, flagBits())

	assert.Equal(t, []byte{0x7E, ax25Esc, 0x7E, 0x41, 0x7E}, sink.bytes)
}

func Test_hdlcReceiver_rxFIFOOverrun_thenRecoversAtNextFlag(t *testing.T) {
	sink := &sliceSink{capacity: 1}
	h := newHDLCReceiver(sink)

	feedBits(h, flagBits())
	feedBits(h, byteBitsLSBFirst(0x41)) // pushing this byte overflows the 1-slot sink
	assert.False(t, h.rxStart)

	sink.bytes = sink.bytes[:0]
	sink.capacity = 0

	feedBits(h, flagBits())
	feedBits(h, byteBitsLSBFirst(0x42))
	feedBits(h, flagBits())
	assert.Equal(t, []byte{0x7E, 0x42, 0x7E}, sink.bytes)
}

func Test_hdlcReceiver_sevenConsecutiveOnes_resetsSync(t *testing.T) {
	sink := &sliceSink{}
	h := newHDLCReceiver(sink)

	feedBits(h, flagBits())
	feedBits(h, []bool{true, true, true, true, true, true, true})
	assert.False(t, h.rxStart)

	sink.bytes = nil
	feedBits(h, flagBits())
	feedBits(h, byteBitsLSBFirst(0x55))
	feedBits(h, flagBits())
	assert.Equal(t, []byte{0x7E, 0x55, 0x7E}, sink.bytes)
}

func Test_hdlcReceiver_dropsBytesBeforeFirstFlag(t *testing.T) {
	sink := &sliceSink{}
	h := newHDLCReceiver(sink)

	feedBits(h, byteBitsLSBFirst(0xAA))
	assert.Empty(t, sink.bytes)

	feedBits(h, flagBits())
	feedBits(h, byteBitsLSBFirst(0xAA))
	feedBits(h, flagBits())
	assert.Equal(t, []byte{0x7E, 0xAA, 0x7E}, sink.bytes)
}

// Package afsk implements the AFSK1200 (Bell-202) modem core: a frequency
// discriminator demodulator, a direct-digital-synthesis modulator, and the
// shared HDLC framer that sits between them and the byte-stream facade
// exposed to a higher (AX.25) layer.
//
// Every exported type here is meant to be driven one sample or one byte at a
// time from the caller's own scheduling context, the way the original
// firmware drives it from interrupt handlers — see Modem for how the pieces
// are wired together, the peripheral package for the collaborators that
// supply and consume samples, and SystemClock for the clock.
package afsk

// SinLen is the number of samples in one full DDS sine cycle. The table is
// unsigned 8-bit, centred on 128.
const SinLen = 512

// quarterSine is the first quarter of the 512-sample wave; SinSample
// reconstructs the rest by symmetry. Values taken from the reference
// BeRTOS sin_table, which this modem's tone generation must match exactly
// for bit-for-bit reproducible demodulation of recorded test vectors.
var quarterSine = [SinLen / 4]uint8{
	128, 129, 131, 132, 134, 135, 137, 138, 140, 142, 143, 145, 146, 148, 149, 151,
	152, 154, 155, 157, 158, 160, 162, 163, 165, 166, 167, 169, 170, 172, 173, 175,
	176, 178, 179, 181, 182, 183, 185, 186, 188, 189, 190, 192, 193, 194, 196, 197,
	198, 200, 201, 202, 203, 205, 206, 207, 208, 210, 211, 212, 213, 214, 215, 217,
	218, 219, 220, 221, 222, 223, 224, 225, 226, 227, 228, 229, 230, 231, 232, 233,
	234, 234, 235, 236, 237, 238, 238, 239, 240, 241, 241, 242, 243, 243, 244, 245,
	245, 246, 246, 247, 248, 248, 249, 249, 250, 250, 250, 251, 251, 252, 252, 252,
	253, 253, 253, 253, 254, 254, 254, 254, 254, 255, 255, 255, 255, 255, 255, 255,
}

// SinSample returns the i'th sample of the full wave, i in [0, SinLen).
// i outside that range is a contract violation.
func SinSample(i int) uint8 {
	if i < 0 || i >= SinLen {
		panic("afsk: SinSample index out of range")
	}
	q := i % (SinLen / 2)
	if q >= SinLen/4 {
		q = SinLen/2 - q - 1
	}
	s := quarterSine[q]
	if i >= SinLen/2 {
		return 255 - s
	}
	return s
}

package serialtnc

// KISS framing bytes, per http://www.ka9q.net/papers/kiss.html.
const (
	fend  = 0xC0
	fesc  = 0xDB
	tfend = 0xDC
	tfesc = 0xDD
)

// kissCmdDataFrame is the only command this TNC implements; TXDELAY,
// persistence, slot time, and the other per-channel tuning commands are
// accepted and silently discarded, matching modern KISS clients' tolerance
// for a TNC that ignores them.
const kissCmdDataFrame = 0x00

// encodeKISSFrame wraps payload in a single-channel KISS data frame,
// escaping any FEND/FESC bytes found in the payload itself.
func encodeKISSFrame(payload []byte) []byte {
	framed := make([]byte, 0, len(payload)+4)
	framed = append(framed, fend, kissCmdDataFrame)
	for _, b := range payload {
		switch b {
		case fend:
			framed = append(framed, fesc, tfend)
		case fesc:
			framed = append(framed, fesc, tfesc)
		default:
			framed = append(framed, b)
		}
	}
	framed = append(framed, fend)
	return framed
}

// kissDecoder reassembles KISS frames from a raw byte stream one byte at a
// time, mirroring the teacher's kiss_frame_t accumulator but driven by
// pushed bytes rather than a blocking read callback.
type kissDecoder struct {
	frame   []byte
	inFrame bool
	escaped bool
}

// push feeds one raw stream byte to the decoder. It returns a completed
// frame's payload (command byte stripped, escapes resolved) and true
// whenever a FEND closes a non-empty, data-frame-commanded frame.
func (d *kissDecoder) push(b byte) ([]byte, bool) {
	if b == fend {
		var out []byte
		if d.inFrame && len(d.frame) > 0 && d.frame[0]&0x0F == kissCmdDataFrame {
			out = append([]byte(nil), d.frame[1:]...)
		}
		d.frame = d.frame[:0]
		d.inFrame = true
		d.escaped = false
		return out, out != nil
	}
	if !d.inFrame {
		return nil, false // noise before the first FEND
	}
	if d.escaped {
		switch b {
		case tfend:
			d.frame = append(d.frame, fend)
		case tfesc:
			d.frame = append(d.frame, fesc)
		default:
			d.frame = append(d.frame, b)
		}
		d.escaped = false
		return nil, false
	}
	if b == fesc {
		d.escaped = true
		return nil, false
	}
	d.frame = append(d.frame, b)
	return nil, false
}

package afsk

// FilterProfile selects the fixed first-order IIR approximation applied to
// the frequency discriminator's output before edge detection.
type FilterProfile int

const (
	// Butterworth is the flatter, more selective profile; it costs three
	// shift-adds per sample instead of Chebyshev's one.
	Butterworth FilterProfile = iota
	// Chebyshev trades stopband rejection for a cheaper filter step,
	// useful on the slowest target microcontrollers.
	Chebyshev
)

// iirFilter is a first-order IIR filter with coefficients approximated by
// integer shifts rather than multiplies, so it stays multiply-free and
// allocation-free on the sample-by-sample hot path.
type iirFilter struct {
	x       [2]int16
	y       [2]int16
	profile FilterProfile
}

func (f *iirFilter) step(raw int16) int16 {
	f.x[0], f.x[1] = f.x[1], raw
	f.y[0] = f.y[1]

	if f.profile == Chebyshev {
		f.y[1] = f.x[0] + f.x[1] + (f.y[0] >> 1)
	} else {
		f.y[1] = f.x[0] + f.x[1] + (f.y[0] >> 1) + (f.y[0] >> 3) + (f.y[0] >> 5)
	}

	return f.y[1]
}

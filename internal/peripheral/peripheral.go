// Package peripheral supplies implementations of two of the three
// capability contracts spec.md's design notes call for — a sample source
// and a sample sink with enable/disable — so the afsk core can run against
// real audio hardware or against recorded/generated files interchangeably.
// The third, the monotonic clock, is afsk.SystemClock.
package peripheral

import (
	"io"

	"github.com/kb9vln/afsk1200/internal/afsk"
)

// ADCSource drives onSample once per sample, in order, with signed 8-bit
// samples until it is closed or its underlying stream is exhausted.
// FileSource makes these calls as fast as it reads the file, not paced to
// a sample rate.
type ADCSource interface {
	Run(onSample func(x int8)) error
	io.Closer
}

// DACDriver is the sample-sink half of the DAC peripheral contract: a
// concrete afsk.DACSink that also owns whatever resource backs it.
type DACDriver interface {
	afsk.DACSink
	io.Closer
}

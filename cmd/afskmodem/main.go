// Command afskmodem runs a software AFSK1200/Bell-202 packet modem: it
// wires the ADC/DAC peripherals, the core modulator/demodulator/framer,
// PTT keying, and the observability surfaces (Prometheus metrics, a live
// WebSocket decode feed, a KISS PTY) into one running process, the role
// the teacher's cmd/direwolf/main.go plays for its own modem stack.
//
// Run with no subcommand (or "run") for unattended daemon operation. Run
// "monitor" for the same daemon plus a raw-mode interactive terminal: q
// quits, f forces a flush, c clears RXFIFO_OVERRUN.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/kb9vln/afsk1200/internal/afsk"
	"github.com/kb9vln/afsk1200/internal/config"
	"github.com/kb9vln/afsk1200/internal/logging"
	"github.com/kb9vln/afsk1200/internal/monitor"
	"github.com/kb9vln/afsk1200/internal/serialtnc"
)

func main() {
	args := os.Args[1:]
	subcommand := "run"
	if len(args) > 0 && (args[0] == "run" || args[0] == "monitor") {
		subcommand = args[0]
		args = args[1:]
	}

	if err := run(subcommand, args); err != nil {
		fmt.Fprintln(os.Stderr, "afskmodem:", err)
		os.Exit(1)
	}
}

func run(subcommand string, args []string) error {
	var cfgPath string
	fs := pflag.NewFlagSet("afskmodem "+subcommand, pflag.ContinueOnError)
	fs.StringVar(&cfgPath, "config", "", "path to a YAML config file")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	config.RegisterFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	// --config is only known after parsing: load the file it names, then
	// parse again so flags given on the command line still override it.
	if cfgPath != "" {
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
		if err := fs.Parse(args); err != nil {
			return err
		}
	}

	logger := logging.New(cfg.Debug)

	decodeLog, err := logging.NewDecodeLog(cfg.DecodeLogDir)
	if err != nil {
		return err
	}
	defer decodeLog.Close()

	// The DAC driver needs the modem to pull samples from, and the modem
	// needs the DAC driver to disable once its trailer drains; a dacSwitch
	// breaks the cycle by letting the modem hold a DACSink whose backing
	// driver and PTT keyer are attached after they are opened.
	dac := dacSwitch{logger: logger}
	modem := afsk.NewModem(cfg.ModemConfig(), afsk.SystemClock{}, &dac)

	adc, dacDriver, pttDrv, err := openPeripherals(cfg, modem)
	if err != nil {
		return fmt.Errorf("open peripherals: %w", err)
	}
	dac.attach(dacDriver, pttDrv)
	defer adc.Close()
	defer dacDriver.Close()
	defer pttDrv.Close()

	metrics := monitor.NewMetrics(prometheus.DefaultRegisterer)
	feed := monitor.NewFeed()

	tnc, err := serialtnc.Open(modem)
	if err != nil {
		return fmt.Errorf("open KISS PTY: %w", err)
	}
	defer tnc.Close()
	logger.Info("KISS TNC ready", "tty", tnc.TTYName())

	tnc.OnFrame(func(payload []byte) {
		metrics.RecordDeframed(len(payload))
		if err := decodeLog.WriteFrame(time.Now(), 0, payload); err != nil {
			logger.Error("decode log write failed", "err", err)
		}
		feed.Publish(monitor.DecodeEvent{Time: time.Now(), Kind: "frame"})
	})
	tnc.OnTransmit(func(payload []byte) {
		metrics.RecordFramed(len(payload))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 8)

	go func() { errc <- adc.Run(modem.ADCSample) }()
	go func() { errc <- tnc.RunRX() }()
	go func() { errc <- tnc.RunTX() }()
	go serveMetrics(ctx, cfg.MetricsAddr, errc)
	go serveWebSocket(ctx, cfg.WebSocketAddr, feed, errc)
	go sampleMetricsLoop(ctx, metrics, modem)

	if subcommand == "monitor" {
		logger.Info("interactive monitor: q quit, f flush, c clear RXFIFO_OVERRUN")
		go func() { errc <- runKeystrokeMonitor(ctx, modem, stop) }()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-errc:
		return err
	}
}

func serveMetrics(ctx context.Context, addr string, errc chan<- error) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errc <- err
	}
}

func serveWebSocket(ctx context.Context, addr string, feed *monitor.Feed, errc chan<- error) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/ws", feed)
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errc <- err
	}
}

// dacSwitch is an afsk.DACSink that forwards to a backing DAC driver and
// keys/unkeys the radio PTT driver around the same sending transitions,
// both attached after construction. This breaks the construction cycle
// between Modem (which needs a DACSink immediately) and the DAC driver
// (which needs the Modem to pull samples from), and gives the PTT driver
// spec.md §1 names as an external collaborator an actual caller: it is
// keyed on whenever the sequencer starts sending and released once the
// DAC driver itself is disabled, i.e. once the trailer has fully drained.
type dacSwitch struct {
	driver peripheralDACSink
	ptt    pttKeyer
	logger *log.Logger
}

type peripheralDACSink interface {
	Enable()
	Disable()
}

type pttKeyer interface {
	Set(on bool) error
}

func (d *dacSwitch) attach(driver peripheralDACSink, ptt pttKeyer) {
	d.driver = driver
	d.ptt = ptt
}

func (d *dacSwitch) Enable() {
	if d.ptt != nil {
		if err := d.ptt.Set(true); err != nil {
			d.logger.Error("PTT key failed", "err", err)
		}
	}
	if d.driver != nil {
		d.driver.Enable()
	}
}

func (d *dacSwitch) Disable() {
	if d.driver != nil {
		d.driver.Disable()
	}
	if d.ptt != nil {
		if err := d.ptt.Set(false); err != nil {
			d.logger.Error("PTT unkey failed", "err", err)
		}
	}
}

func sampleMetricsLoop(ctx context.Context, metrics *monitor.Metrics, modem *afsk.Modem) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.Sample(modem)
		}
	}
}

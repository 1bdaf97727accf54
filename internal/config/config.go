// Package config loads the modem's YAML configuration file and layers
// command-line flag overrides on top of it, the same two-stage scheme the
// teacher's appserver/atest/gen_packets commands use: a base file for the
// stable setup, flags for whatever a single run needs to change.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kb9vln/afsk1200/internal/afsk"
)

// Config is the on-disk/CLI-overridable configuration for one modem
// instance plus its peripheral selection.
type Config struct {
	DACSampleRate int    `yaml:"dac_sample_rate"`
	PreambleLenMS int    `yaml:"preamble_len_ms"`
	TrailerLenMS  int    `yaml:"trailer_len_ms"`
	RXTimeoutMS   int    `yaml:"rx_timeout_ms"`
	Filter        string `yaml:"filter"` // "butterworth" or "chebyshev"

	RXQueueCapacity int `yaml:"rx_queue_capacity"`
	TXQueueCapacity int `yaml:"tx_queue_capacity"`

	SoundDevice string `yaml:"sound_device"`
	ADCFile     string `yaml:"adc_file"` // raw signed-8-bit sample file, used when built without the hw tag
	DACFile     string `yaml:"dac_file"`

	GPIOChip        string `yaml:"gpio_chip"`
	PTTLine         int    `yaml:"ptt_line"`
	StrobeEntryLine int    `yaml:"strobe_entry_line"`
	StrobeExitLine  int    `yaml:"strobe_exit_line"`

	HamlibModel  int    `yaml:"hamlib_model"`
	HamlibDevice string `yaml:"hamlib_device"`

	DecodeLogDir string `yaml:"decode_log_dir"`
	MetricsAddr  string `yaml:"metrics_addr"`
	WebSocketAddr string `yaml:"websocket_addr"`
	Debug        bool   `yaml:"debug"`
}

// Default returns the configuration this package documents and the CLI
// falls back to when no YAML file is given.
func Default() Config {
	return Config{
		DACSampleRate:   afsk.SampleRate,
		PreambleLenMS:   350,
		TrailerLenMS:    50,
		RXTimeoutMS:     0,
		Filter:          "butterworth",
		RXQueueCapacity: 256,
		TXQueueCapacity: 256,
		SoundDevice:     "default",
		GPIOChip:        "/dev/gpiochip0",
		PTTLine:         17,
		StrobeEntryLine: 27,
		StrobeExitLine:  22,
		HamlibModel:     1, // RIG_MODEL_DUMMY
		MetricsAddr:      ":9090",
		WebSocketAddr:    ":8080",
	}
}

// Load reads a YAML file at path into cfg, starting from Default() when
// path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// RegisterFlags binds pflag flags that override individual fields of cfg
// when Parse is subsequently called, the same layering the teacher's
// command-line tools apply over their config file.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.DACSampleRate, "dac-sample-rate", cfg.DACSampleRate, "DAC output sample rate in Hz (must be a multiple of 1200)")
	fs.IntVar(&cfg.PreambleLenMS, "preamble-ms", cfg.PreambleLenMS, "transmit preamble length in milliseconds")
	fs.IntVar(&cfg.TrailerLenMS, "trailer-ms", cfg.TrailerLenMS, "transmit trailer length in milliseconds")
	fs.IntVar(&cfg.RXTimeoutMS, "rx-timeout-ms", cfg.RXTimeoutMS, "receive timeout in ms (0 non-blocking, -1 indefinite)")
	fs.StringVar(&cfg.Filter, "filter", cfg.Filter, "demodulator IIR profile: butterworth or chebyshev")
	fs.StringVar(&cfg.SoundDevice, "sound-device", cfg.SoundDevice, "portaudio device name")
	fs.StringVar(&cfg.ADCFile, "adc-file", cfg.ADCFile, "raw signed-8-bit sample file to replay as ADC input (non-hw builds)")
	fs.StringVar(&cfg.DACFile, "dac-file", cfg.DACFile, "raw signed-8-bit sample file to record DAC output to (non-hw builds)")
	fs.StringVar(&cfg.GPIOChip, "gpio-chip", cfg.GPIOChip, "GPIO character device path for PTT/strobe")
	fs.IntVar(&cfg.PTTLine, "ptt-line", cfg.PTTLine, "GPIO line offset driving PTT")
	fs.IntVar(&cfg.HamlibModel, "hamlib-model", cfg.HamlibModel, "hamlib rig model number (0 disables hamlib PTT)")
	fs.StringVar(&cfg.HamlibDevice, "hamlib-device", cfg.HamlibDevice, "hamlib rig control device path")
	fs.StringVar(&cfg.DecodeLogDir, "decode-log-dir", cfg.DecodeLogDir, "directory for daily decode CSV logs")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "listen address for /metrics")
	fs.StringVar(&cfg.WebSocketAddr, "ws-addr", cfg.WebSocketAddr, "listen address for the /ws live decode feed")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug-level logging")
}

// ModemConfig translates the on-disk/CLI Config into the core afsk.Config.
func (c Config) ModemConfig() afsk.Config {
	profile := afsk.Butterworth
	if c.Filter == "chebyshev" {
		profile = afsk.Chebyshev
	}
	return afsk.Config{
		DACSampleRate:   c.DACSampleRate,
		PreambleLenMS:   c.PreambleLenMS,
		TrailerLenMS:    c.TrailerLenMS,
		RXTimeoutMS:     c.RXTimeoutMS,
		Filter:          profile,
		RXQueueCapacity: c.RXQueueCapacity,
		TXQueueCapacity: c.TXQueueCapacity,
	}
}

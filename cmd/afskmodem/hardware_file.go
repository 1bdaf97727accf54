//go:build !hw

package main

import (
	"fmt"

	"github.com/kb9vln/afsk1200/internal/afsk"
	"github.com/kb9vln/afsk1200/internal/config"
	"github.com/kb9vln/afsk1200/internal/peripheral"
	"github.com/kb9vln/afsk1200/internal/ptt"
)

// openPeripherals replays/records raw signed-8-bit sample files instead of
// touching real audio or GPIO hardware, the default build for development
// and for running the test fixtures spec.md's scenarios describe without a
// sound card or radio attached. Build with -tags hw for the real thing.
func openPeripherals(cfg config.Config, modem *afsk.Modem) (peripheral.ADCSource, peripheral.DACDriver, ptt.Driver, error) {
	if cfg.ADCFile == "" {
		return nil, nil, nil, fmt.Errorf("afskmodem: built without the hw tag; set --adc-file (and --dac-file) or rebuild with -tags hw")
	}
	adc, err := peripheral.OpenFileSource(cfg.ADCFile)
	if err != nil {
		return nil, nil, nil, err
	}

	dacFile := cfg.DACFile
	if dacFile == "" {
		dacFile = "/dev/null"
	}
	dac, err := peripheral.CreateFileSink(dacFile, modem)
	if err != nil {
		adc.Close()
		return nil, nil, nil, err
	}

	return adc, dac, ptt.Null{}, nil
}

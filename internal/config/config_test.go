package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kb9vln/afsk1200/internal/afsk"
)

func Test_Load_overridesDefaultsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modem.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter: chebyshev\npreamble_len_ms: 100\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "chebyshev", cfg.Filter)
	assert.Equal(t, 100, cfg.PreambleLenMS)
	assert.Equal(t, Default().TrailerLenMS, cfg.TrailerLenMS)
}

func Test_RegisterFlags_overridesDefaultValue(t *testing.T) {
	cfg := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, &cfg)

	require.NoError(t, fs.Parse([]string{"--filter=chebyshev", "--preamble-ms=12"}))
	assert.Equal(t, "chebyshev", cfg.Filter)
	assert.Equal(t, 12, cfg.PreambleLenMS)
}

func Test_ModemConfig_translatesFilterProfile(t *testing.T) {
	cfg := Default()
	cfg.Filter = "chebyshev"
	assert.Equal(t, afsk.Chebyshev, cfg.ModemConfig().Filter)

	cfg.Filter = "butterworth"
	assert.Equal(t, afsk.Butterworth, cfg.ModemConfig().Filter)
}

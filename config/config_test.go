package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chdir is a stand-in for testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	_, err := Load("/nonexistent/path/go-nde.yaml")
	require.Error(t, err)

	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 64, cfg.Decoder.MaxRedirectHops)
	assert.Equal(t, 1, cfg.Decoder.Workers)
	assert.Equal(t, "sexp", cfg.Export.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	content := `
log:
  level: debug
decoder:
  strict_primary_index: true
  workers: 4
export:
  format: json
  output: library.json.gz
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Decoder.StrictPrimaryIndex)
	assert.Equal(t, 4, cfg.Decoder.Workers)
	assert.Equal(t, 64, cfg.Decoder.MaxRedirectHops)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, "library.json.gz", cfg.Export.Output)
	assert.Equal(t, "tracks", cfg.Export.Table)
	assert.Equal(t, "display", cfg.Dump.Format)
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "go-nde.yaml"), []byte("dump:\n  format: json\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Dump.Format)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("decoder: [1, 2"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLogger(t *testing.T) {
	log, err := LogConfig{Level: "warn"}.Logger(false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	log, err = LogConfig{Level: "warn", Development: true}.Logger(true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	_, err = LogConfig{Level: "loud"}.Logger(false)
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverlaysFileOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
solver:
  alpha: 0.1
  max_iter: 500
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, body, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.1, cfg.Solver.Alpha)
	require.Equal(t, 500, cfg.Solver.MaxIter)
	require.Equal(t, "debug", cfg.Logging.Level)
	// Unspecified fields keep their defaults.
	require.Equal(t, 0.5, cfg.Solver.Beta)
	require.Equal(t, uint32(270001), cfg.Solver.Seed)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Solver.Seed = 99
	cfg.Solver.MaxTime = 2 * time.Second
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestValidateRejectsOutOfRangeAlpha(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver.Alpha = 0
	require.Error(t, cfg.Validate())

	cfg.Solver.Alpha = 1.5
	require.Error(t, cfg.Validate())
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

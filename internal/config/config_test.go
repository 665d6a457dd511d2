package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Arms:       10,
		CatalogDSN: ":memory:",
		HTTPAddr:   ":8000",
		GRPCAddr:   ":50051",
		LogLevel:   "info",
		LogFormat:  "text",
	}, cfg)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CASINO_ARMS", "3")
	t.Setenv("CASINO_TRIAL_CAP", "5")
	t.Setenv("CASINO_SEED", "18446744073709551615")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Arms)
	assert.Equal(t, 5, cfg.TrialCap)
	assert.Equal(t, ^uint64(0), cfg.Seed)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CASINO_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("CASINO_LOG_LEVEL", "")
	os.Unsetenv("CASINO_LOG_LEVEL")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("CASINO_ARMS", "many")
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorContains(t, err, "parse env:")
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{Arms: 0}.Validate())
	assert.Error(t, Config{Arms: 2, TrialCap: -1}.Validate())
	assert.NoError(t, Config{Arms: 2}.Validate())
}

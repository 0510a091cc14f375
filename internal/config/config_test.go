package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default("9090")
	assert.Equal(t, ":9090", cfg.Server.Addr)
	require.NoError(t, cfg.Validate())
}

func TestLoadFallsBackToDefaultWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"), "7000")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 2, cfg.Chain.Difficulty)
}

func TestLoadAppliesYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "chain:\n  difficulty: 4\n  peer_timeout: 5s\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path, "7000")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Chain.Difficulty)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("BLOCKNODE_DIFFICULTY", "6")
	t.Setenv("BLOCKNODE_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "7000")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Chain.Difficulty)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsNegativeDifficulty(t *testing.T) {
	cfg := Default("9090")
	cfg.Chain.Difficulty = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyAddr(t *testing.T) {
	cfg := Default("9090")
	cfg.Server.Addr = ""
	assert.Error(t, cfg.Validate())
}

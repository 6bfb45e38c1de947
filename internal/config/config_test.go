package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plexforge/kometa-studio/pkg/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "template", cfg.Render.Mode)
	assert.Equal(t, "file", cfg.Sealing.Source)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Log, cfg.Log)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kstudio.yaml")
	doc := "data_dir: /tmp/kstudio-test\nlog:\n  level: debug\nrender:\n  mode: masked\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kstudio-test", cfg.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "masked", cfg.Render.Mode)
	// Unset sections keep their defaults.
	assert.Equal(t, "file", cfg.Sealing.Source)
}

func TestKeyOptionsDerivesKeyFileFromDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data/kstudio"

	opts := cfg.KeyOptions()
	assert.Equal(t, crypto.KeySourceFile, opts.Source)
	assert.Equal(t, filepath.Join("/data/kstudio", "sealing.key"), opts.FilePath)
	assert.True(t, opts.GenerateIfMissing)

	cfg.Sealing = Sealing{Source: "env"}
	opts = cfg.KeyOptions()
	assert.Equal(t, crypto.KeySourceEnv, opts.Source)
	assert.False(t, opts.GenerateIfMissing)
	assert.Equal(t, "KSTUDIO_SEALING_KEY", opts.EnvVar)
}

func TestStorePath(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data/kstudio"
	assert.Equal(t, filepath.Join("/data/kstudio", "store"), cfg.StorePath())
}

// Package config loads the tool's own settings: where the profile store
// lives, how logging behaves, and how the sealing key is sourced. This is
// the studio's configuration, not the Kometa documents it edits.
package config

import (
	"os"
	"path/filepath"

	"github.com/plexforge/kometa-studio/pkg/crypto"
	"github.com/spf13/viper"
)

// Log holds the logging settings.
type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Render holds the default rendering settings.
type Render struct {
	// Mode is the default render mode: template, masked, or full.
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// Sealing holds the settings for the secrets sealing key.
type Sealing struct {
	// Source is where the key comes from: file or env.
	Source string `yaml:"source" mapstructure:"source"`

	// KeyFile is the key path when Source is file. Empty means
	// <data_dir>/sealing.key.
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`
}

// Config is the tool configuration.
type Config struct {
	DataDir string  `yaml:"data_dir" mapstructure:"data_dir"`
	Log     Log     `yaml:"log" mapstructure:"log"`
	Render  Render  `yaml:"render" mapstructure:"render"`
	Sealing Sealing `yaml:"sealing" mapstructure:"sealing"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Log:     Log{Level: "info", Format: "text"},
		Render:  Render{Mode: "template"},
		Sealing: Sealing{Source: "file"},
	}
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		return "./data"
	}
	return filepath.Join(home, ".kstudio")
}

// StorePath returns the directory of the on-disk profile store.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "store")
}

// KeyOptions returns the sealing key options derived from the config.
func (c *Config) KeyOptions() crypto.KeyOptions {
	keyFile := c.Sealing.KeyFile
	if keyFile == "" {
		keyFile = filepath.Join(c.DataDir, "sealing.key")
	}
	return crypto.KeyOptions{
		Source:   crypto.KeySource(c.Sealing.Source),
		FilePath: keyFile,
		EnvVar:   "KSTUDIO_SEALING_KEY",
		// Generate on first run when using a file source, so importing a
		// profile needs no manual key setup.
		GenerateIfMissing: c.Sealing.Source == "file",
	}
}

// Load reads the tool configuration. An explicit path wins; otherwise a
// kstudio.yaml is searched in the working directory and the data dir, and
// missing files fall back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if path == "" {
		v.SetConfigName("kstudio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultDataDir())
	}
	cfg := Default()
	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

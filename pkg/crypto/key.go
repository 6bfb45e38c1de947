package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// KeySource defines how the sealing key is loaded.
type KeySource string

const (
	KeySourceFile KeySource = "file"
	KeySourceEnv  KeySource = "env"
)

// KeyOptions holds configuration for loading the sealing key.
type KeyOptions struct {
	Source   KeySource
	FilePath string
	EnvVar   string // e.g., KSTUDIO_SEALING_KEY

	// GenerateIfMissing creates and persists a fresh key at FilePath when
	// none exists yet, so first runs need no manual key setup.
	GenerateIfMissing bool
}

// LoadKey loads a 32-byte sealing key according to options. File and env
// values are base64-encoded 32 bytes.
func LoadKey(opts KeyOptions) ([]byte, error) {
	switch opts.Source {
	case KeySourceFile:
		if opts.FilePath == "" {
			return nil, errors.New("sealing key file path is required")
		}
		b64, err := os.ReadFile(opts.FilePath)
		if err != nil {
			if opts.GenerateIfMissing && errors.Is(err, os.ErrNotExist) {
				return generateAndPersistKey(opts.FilePath)
			}
			return nil, fmt.Errorf("failed to read sealing key file: %w", err)
		}
		key, err := decodeKey(trimmed(b64))
		if err != nil {
			return nil, fmt.Errorf("invalid sealing key file: %w", err)
		}
		return key, nil
	case KeySourceEnv:
		if opts.EnvVar == "" {
			return nil, errors.New("sealing key env var is required")
		}
		val := os.Getenv(opts.EnvVar)
		if val == "" {
			if opts.GenerateIfMissing && opts.FilePath != "" {
				return generateAndPersistKey(opts.FilePath)
			}
			return nil, fmt.Errorf("env var %s is empty", opts.EnvVar)
		}
		return decodeKey(val)
	default:
		return nil, fmt.Errorf("unknown sealing key source: %s", opts.Source)
	}
}

func generateAndPersistKey(path string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create dir for sealing key: %w", err)
	}
	b64 := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(b64), 0600); err != nil {
		return nil, fmt.Errorf("failed to write sealing key file: %w", err)
	}
	return key, nil
}

func decodeKey(v string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("base64 decode failed: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid key length: got %d, want 32", len(key))
	}
	return key, nil
}

func trimmed(b []byte) string {
	start := 0
	for start < len(b) && (b[start] == ' ' || b[start] == '\n' || b[start] == '\r' || b[start] == '\t') {
		start++
	}
	end := len(b)
	for end > start && (b[end-1] == ' ' || b[end-1] == '\n' || b[end-1] == '\r' || b[end-1] == '\t') {
		end--
	}
	return string(b[start:end])
}

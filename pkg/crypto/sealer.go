// Package crypto seals secrets records at rest. The profile store is the
// durable owner of credential material, so it never writes a secrets record
// unencrypted.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Sealer provides authenticated encryption (AES-256-GCM) for secrets
// records written to the store.
type Sealer struct {
	key []byte
}

// NewSealer creates a sealer with the provided 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid key length: got %d, want 32", len(key))
	}
	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)
	return &Sealer{key: keyCopy}, nil
}

// Seal encrypts plaintext bound to the given associated data (typically the
// profile name, so a sealed record cannot be replayed under another
// profile). It returns nonce||ciphertext.
func (s *Sealer) Seal(plaintext, aad []byte) ([]byte, error) {
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nil, nonce, plaintext, aad)
	out := make([]byte, 0, len(nonce)+len(sealed))
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// Open decrypts data produced by Seal. Input must be nonce||ciphertext and
// the associated data must match what was sealed.
func (s *Sealer) Open(data, aad []byte) ([]byte, error) {
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}

	if len(data) < gcm.NonceSize() {
		return nil, errors.New("sealed record too short")
	}
	nonce := data[:gcm.NonceSize()]
	ciphertext := data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, aad)
}

// Zeroize attempts to clear key material from memory.
func (s *Sealer) Zeroize() {
	if s == nil || s.key == nil {
		return
	}
	for i := range s.key {
		s.key[i] = 0
	}
}

func (s *Sealer) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

package service

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// XChaCha20Poly1305Sealer implements Sealer with XChaCha20-Poly1305.
//
// The 24-byte nonce is random per call and prepended to the ciphertext; the result is
// base64 (standard encoding) so it can live inside a JSON document.
type XChaCha20Poly1305Sealer struct {
	aead cipher.AEAD
}

// NewXChaCha20Poly1305Sealer creates a sealer. The key must be exactly 32 bytes.
func NewXChaCha20Poly1305Sealer(key []byte) (*XChaCha20Poly1305Sealer, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create XChaCha20-Poly1305 cipher: %w", err)
	}
	return &XChaCha20Poly1305Sealer{aead: aead}, nil
}

// NewSealerFromBase64 decodes a base64 key and creates a sealer.
func NewSealerFromBase64(encodedKey string) (*XChaCha20Poly1305Sealer, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode settings encryption key: %w", err)
	}
	defer Zero(key)

	return NewXChaCha20Poly1305Sealer(key)
}

// Seal encrypts plaintext, binding it to aad.
func (s *XChaCha20Poly1305Sealer) Seal(plaintext, aad []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, plaintext, aad)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal. The same aad must be supplied.
func (s *XChaCha20Poly1305Sealer) Open(sealed string, aad []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sealed value: %w", err)
	}
	if len(raw) < s.aead.NonceSize() {
		return nil, fmt.Errorf("sealed value is too short")
	}

	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// Zero overwrites a byte slice with zeros to clear key material from memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

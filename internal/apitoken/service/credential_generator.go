package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	apperrors "github.com/allisson/vmadmin/internal/errors"
)

const (
	// SecretLength is the number of characters produced by GenerateSecret.
	SecretLength = 64

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type credentialGenerator struct{}

// GenerateSecret maps each of SecretLength random bytes onto the 62-character alphabet.
func (g *credentialGenerator) GenerateSecret() (string, error) {
	randomBytes := make([]byte, SecretLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random secret")
	}

	secret := make([]byte, SecretLength)
	for i, b := range randomBytes {
		secret[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(secret), nil
}

// Digest returns the lowercase hex SHA-256 of secret, the form stored and looked up as token_hash.
func (g *credentialGenerator) Digest(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(hash[:])
}

// NewCredentialGenerator creates a CredentialGenerator backed by crypto/rand and SHA-256.
func NewCredentialGenerator() CredentialGenerator {
	return &credentialGenerator{}
}

// Package service provides the credential generator behind API token issuance.
package service

// CredentialGenerator produces high-entropy secrets and their one-way digests.
// Implementations must use a cryptographically secure random source.
type CredentialGenerator interface {
	// GenerateSecret returns SecretLength characters drawn from the alphanumeric alphabet.
	GenerateSecret() (string, error)

	// Digest returns the lowercase hex SHA-256 of the UTF-8 bytes of secret.
	Digest(secret string) string
}

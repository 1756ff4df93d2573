package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialGenerator(t *testing.T) {
	generator := NewCredentialGenerator()
	assert.IsType(t, &credentialGenerator{}, generator)
}

func TestCredentialGenerator_GenerateSecret(t *testing.T) {
	generator := NewCredentialGenerator()

	t.Run("Success_LengthAndAlphabet", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			secret, err := generator.GenerateSecret()
			require.NoError(t, err)

			assert.Len(t, secret, SecretLength)
			for _, r := range secret {
				assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
			}
		}
	})

	t.Run("Success_UniqueSecrets", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 100; i++ {
			secret, err := generator.GenerateSecret()
			require.NoError(t, err)
			_, dup := seen[secret]
			assert.False(t, dup)
			seen[secret] = struct{}{}
		}
	})

	t.Run("Success_AlphabetSize", func(t *testing.T) {
		assert.Len(t, alphabet, 62)
	})
}

func TestCredentialGenerator_Digest(t *testing.T) {
	generator := NewCredentialGenerator()

	t.Run("Success_MatchesSHA256Hex", func(t *testing.T) {
		expected := sha256.Sum256([]byte("vma_secret"))
		assert.Equal(t, hex.EncodeToString(expected[:]), generator.Digest("vma_secret"))
	})

	t.Run("Success_Deterministic", func(t *testing.T) {
		first := generator.Digest("same-input")
		second := generator.Digest("same-input")

		assert.Equal(t, first, second)
		assert.Len(t, first, 64)
		assert.Equal(t, strings.ToLower(first), first)
	})

	t.Run("Success_DifferentInputs", func(t *testing.T) {
		assert.NotEqual(t, generator.Digest("input-a"), generator.Digest("input-b"))
	})
}

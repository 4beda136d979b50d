package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

var randomRead = rand.Read

// GenerateRandomToken generates a random token of the given byte length, hex encoded.
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateVerificationToken generates a 32-character token for DNS ownership challenges.
func GenerateVerificationToken() (string, error) {
	return GenerateRandomToken(16) // 16 bytes = 32 hex characters
}

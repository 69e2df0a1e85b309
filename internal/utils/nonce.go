package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateNonce returns size random bytes.
func GenerateNonce(size int) ([]byte, error) {
	nonce := make([]byte, size)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return nonce, nil
}

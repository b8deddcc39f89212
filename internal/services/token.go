package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// accessTokenBytes of entropy, hex encoded to 64 characters.
const accessTokenBytes = 32

func newAccessToken() (string, error) {
	raw := make([]byte, accessTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

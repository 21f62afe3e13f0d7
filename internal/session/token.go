package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// TokenLength is the length of an encoded session token.
const TokenLength = 32

// GenerateToken generates a cryptographically secure session token.
// 24 random bytes encode to 32 URL-safe characters. No uniqueness
// check is performed against existing tokens; collision avoidance is
// probabilistic.
func GenerateToken() (string, error) {

	const size = 24 // 192 bits

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

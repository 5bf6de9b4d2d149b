package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewRefreshToken returns an opaque token for the client and the hash that
// is stored server-side.
func NewRefreshToken() (token, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(b)
	return token, HashRefreshToken(token), nil
}

func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = 10 * time.Minute

// GenerateResetToken returns a random plaintext token for email
// delivery, its SHA-256 hash for persistence, and the expiry time.
// Only the hash is ever stored.
func GenerateResetToken() (plain string, hashed string, expire time.Time, err error) {
	b := make([]byte, 20)
	if _, err = rand.Read(b); err != nil {
		return "", "", time.Time{}, err
	}
	plain = hex.EncodeToString(b)
	return plain, HashResetToken(plain), time.Now().Add(ResetTokenTTL), nil
}

// HashResetToken hashes a plaintext reset token for storage or lookup.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

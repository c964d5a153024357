package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// PublicToken returns the unguessable capability a customer uses to look up
// their order: 24 bytes of crypto/rand entropy, URL-safe, no padding.
// Uniqueness is still enforced by the store, not here.
func PublicToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// PickupCode returns a uniform random 4-digit code in [1000, 9999]. It is a
// human verification aid, not a security boundary, and is not unique across
// orders.
func PickupCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("read random int: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}

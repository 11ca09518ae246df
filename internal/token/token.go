// Package token generates the unguessable identifiers handed out as
// one-time download tokens.
package token

import (
	"crypto/rand"
	"fmt"
)

// alphabet is URL-safe, so tokens can be embedded in paths without escaping.
// 64 symbols means each random byte maps to exactly 6 bits of entropy.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Length is fixed at 12 symbols = 72 bits. By the birthday bound, ~10^9
// issued tokens give roughly a 1-in-10^4 chance of any collision, so no
// uniqueness check against existing records is needed at this scale.
const Length = 12

// New returns a fresh token from a cryptographically secure source.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[b&63]
	}
	return string(buf), nil
}

// Package randtoken generates uniformly random alphanumeric identifiers
// (subscription tokens, referral codes) from crypto/rand, grounded in the
// teacher's crypto/rand-based token generators.
package randtoken

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate returns a uniformly random string of length n drawn from
// [a-zA-Z0-9], the alphabet spec.md §8 fixes for subscription tokens.
func Generate(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate random token: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// SubscriptionToken returns the 64-character token spec.md §6/GLOSSARY fixes.
func SubscriptionToken() (string, error) { return Generate(64) }

// ReferralCode returns a short, easily-shared code for word-of-mouth referral.
func ReferralCode() (string, error) { return Generate(8) }

// Package token generates opaque random tokens: the 64-character
// subscription token (spec.md §3/§8) and node agent secrets. Grounded in
// the teacher's internal/infrastructure/token.TokenGenerator, adapted from
// a hex-prefixed API-key shape to the alphabet spec.md §8 fixes for
// subscription tokens: [a-zA-Z0-9], length 64.
package token

import (
	"crypto/rand"
	"fmt"
)

const subscriptionTokenLength = 64

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generator creates uniformly random, unguessable opaque tokens.
type Generator interface {
	SubscriptionToken() (string, error)
}

type generator struct{}

func NewGenerator() Generator { return &generator{} }

// SubscriptionToken returns a 64-character token drawn uniformly from
// [a-zA-Z0-9], rejecting modulo bias by rejection-sampling each byte.
func (generator) SubscriptionToken() (string, error) {
	out := make([]byte, subscriptionTokenLength)
	buf := make([]byte, 1)
	const maxMultiple = 256 - (256 % len(alphanumeric))

	for i := range out {
		for {
			if _, err := rand.Read(buf); err != nil {
				return "", fmt.Errorf("generate subscription token: %w", err)
			}
			if int(buf[0]) < maxMultiple {
				out[i] = alphanumeric[int(buf[0])%len(alphanumeric)]
				break
			}
		}
	}
	return string(out), nil
}

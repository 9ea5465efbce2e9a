// Package randid generates short random identifiers.
package randid

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns a random string of length characters drawn from [a-z0-9].
func Generate(length int) string {
	if length <= 0 {
		return ""
	}

	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("randid: crypto/rand failed: " + err.Error())
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// Prefixed returns prefix followed by a random suffix of length characters.
// Probe keys and batch ids use it so they sort together and are easy to spot.
func Prefixed(prefix string, length int) string {
	return prefix + Generate(length)
}

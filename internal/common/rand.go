package common

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter is the number of random bytes; the resulting string is
// twice as long. It returns an error if the secure random source fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MakePseudoRandHexString is the non-cryptographic counterpart of
// MakeRandHexString. It never fails and is only meant as a fallback when
// the secure source is unavailable.
func MakePseudoRandHexString(size int) string {
	b := make([]byte, size)
	for i := range b {
		b[i] = byte(mrand.UintN(256))
	}
	return hex.EncodeToString(b)
}

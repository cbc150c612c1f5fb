package common

import "crypto/rand"

// GenerateRandByteArray returns n bytes read from crypto/rand. It panics if
// the system random source fails, which leaves no safe way to build a salt.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites b with zeros. Used on password buffers read from
// the terminal once they have been handed to the session layer.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Package cryptox derives and verifies password secrets stored in account
// records.
//
// Secrets are encoded as "$argon2id$<salt>$<key>" with both parts in raw
// standard base64. Records written before hashing was introduced hold the
// password in plaintext; Verify accepts those and reports them as legacy so
// the caller can rewrite them.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/polymap/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	secretPrefix = "$argon2id$"
	saltSize     = 16
	keySize      = 32
)

var ErrMalformedSecret = errors.New("malformed secret")

var b64 = base64.RawStdEncoding

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// HashSecret returns the encoded secret for password with a fresh random salt.
func HashSecret(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	return encode(salt, DeriveKey(password, salt))
}

// IsHashed reports whether stored is an argon2id encoding rather than a
// legacy plaintext secret.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, secretPrefix)
}

// Verify checks password against stored. legacy is true when stored was a
// plaintext secret; it is only meaningful when ok is true.
func Verify(stored string, password []byte) (ok bool, legacy bool, err error) {
	if !IsHashed(stored) {
		return subtle.ConstantTimeCompare([]byte(stored), password) == 1, true, nil
	}

	salt, key, err := decode(stored)
	if err != nil {
		return false, false, err
	}
	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(key, candidate) == 1, false, nil
}

func encode(salt, key []byte) string {
	return secretPrefix + b64.EncodeToString(salt) + "$" + b64.EncodeToString(key)
}

func decode(stored string) (salt, key []byte, err error) {
	parts := strings.Split(strings.TrimPrefix(stored, secretPrefix), "$")
	if len(parts) != 2 {
		return nil, nil, ErrMalformedSecret
	}
	if salt, err = b64.DecodeString(parts[0]); err != nil {
		return nil, nil, ErrMalformedSecret
	}
	if key, err = b64.DecodeString(parts[1]); err != nil {
		return nil, nil, ErrMalformedSecret
	}
	return salt, key, nil
}

// Package cryptox contains the password-verifier and at-rest sealing helpers
// used by the demo directory and the sealed bridge.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/furnistore/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the number of random bytes used when a verifier is created.
const SaltSize = 16

var (
	ErrInvalidKey     = errors.New("invalid key length")
	ErrSealedTooShort = errors.New("sealed value too short")
)

// DeriveKey stretches a password with argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key so the key itself never needs storing.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewVerifier generates a fresh salt and the matching verifier for password.
func NewVerifier(password []byte) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return salt, MakeVerifier(DeriveKey(password, salt))
}

// CheckPassword reports whether password matches the stored salt/verifier
// pair. The comparison is constant time.
func CheckPassword(password, salt, verifier []byte) bool {
	candidate := MakeVerifier(DeriveKey(password, salt))
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}

// ParseKey decodes a hex AES key; 16, 24 or 32 decoded bytes are accepted.
func ParseKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	default:
		return nil, ErrInvalidKey
	}
}

// Seal encrypts plaintext with AES-GCM and returns nonce||ciphertext.
func Seal(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. Tampered or truncated input yields an error.
func Open(sealed, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(sealed) < ns {
		return nil, ErrSealedTooShort
	}

	return aesgcm.Open(nil, sealed[:ns], sealed[ns:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return cipher.NewGCM(block)
}

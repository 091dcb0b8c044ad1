// Package cryptox implements password digesting for locally stored
// credentials using argon2id with a per-password random salt.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	argonTime   = 1
	argonMemory = 64 * 1024
	argonLanes  = 4
	keyLength   = 32
)

// HashPassword derives an argon2id digest for password and returns it in the
// encoded form "argon2id$<salt>$<hash>" (both parts base64, no padding).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonLanes, keyLength)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("argon2id$%s$%s", enc.EncodeToString(salt), enc.EncodeToString(key)), nil
}

// VerifyPassword re-derives the digest for password with the salt embedded in
// encoded and compares in constant time.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return false
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonLanes, keyLength)
	return subtle.ConstantTimeCompare(got, want) == 1
}

package cryptox

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	t.Run("Encoded Format", func(t *testing.T) {
		digest, err := HashPassword("secret1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		parts := strings.Split(digest, "$")
		if len(parts) != 3 {
			t.Fatalf("expected 3 parts, got %d: %s", len(parts), digest)
		}
		if parts[0] != "argon2id" {
			t.Errorf("expected argon2id prefix, got %s", parts[0])
		}
	})

	t.Run("Unique Salts", func(t *testing.T) {
		a, err := HashPassword("secret1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		b, err := HashPassword("secret1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if a == b {
			t.Error("two digests of the same password should differ")
		}
	})
}

func TestVerifyPassword(t *testing.T) {
	digest, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("Correct Password", func(t *testing.T) {
		if !VerifyPassword("secret1", digest) {
			t.Error("expected digest to verify")
		}
	})

	t.Run("Wrong Password", func(t *testing.T) {
		if VerifyPassword("secret2", digest) {
			t.Error("expected wrong password to fail")
		}
	})

	t.Run("Malformed Digest", func(t *testing.T) {
		for _, bad := range []string{"", "argon2id$x", "md5$abc$def", "argon2id$!!$!!"} {
			if VerifyPassword("secret1", bad) {
				t.Errorf("expected malformed digest %q to fail", bad)
			}
		}
	})
}

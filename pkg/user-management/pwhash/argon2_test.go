package pwhash

import (
	"strings"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	t.Run("with matching password", func(t *testing.T) {
		hash, err := HashPassword("pw123456")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(hash, "$argon2id$") {
			t.Errorf("unexpected hash format: %s", hash)
		}

		match, err := ComparePasswordWithHash(hash, "pw123456")
		if err != nil {
			t.Fatal(err)
		}
		if !match {
			t.Error("should match")
		}
	})

	t.Run("with wrong password", func(t *testing.T) {
		hash, err := HashPassword("pw123456")
		if err != nil {
			t.Fatal(err)
		}
		match, err := ComparePasswordWithHash(hash, "pw123457")
		if err != nil {
			t.Fatal(err)
		}
		if match {
			t.Error("should not match")
		}
	})

	t.Run("hashes are salted", func(t *testing.T) {
		h1, err := HashPassword("pw123456")
		if err != nil {
			t.Fatal(err)
		}
		h2, err := HashPassword("pw123456")
		if err != nil {
			t.Fatal(err)
		}
		if h1 == h2 {
			t.Error("two hashes of the same password should differ")
		}
	})
}

func TestCompareWithMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=4,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=4,p=1$not-base64!$aGFzaA",
	} {
		if _, err := ComparePasswordWithHash(encoded, "pw123456"); err == nil {
			t.Errorf("expected error for %q", encoded)
		}
	}
}

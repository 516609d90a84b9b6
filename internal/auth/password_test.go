//go:build unit

package auth

import (
	"bytes"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("verify accepts the right password", func(t *testing.T) {
		salt, hash, err := HashPassword("correct horse battery staple")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		ok, err := VerifyPassword("correct horse battery staple", salt, hash)
		if err != nil {
			t.Fatalf("VerifyPassword failed: %v", err)
		}
		if !ok {
			t.Error("expected the password to verify")
		}
	})

	t.Run("verify rejects a wrong password", func(t *testing.T) {
		salt, hash, err := HashPassword("hunter2")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		ok, err := VerifyPassword("hunter3", salt, hash)
		if err != nil {
			t.Fatalf("VerifyPassword failed: %v", err)
		}
		if ok {
			t.Error("expected the password to be rejected")
		}
	})

	t.Run("salts are unique per hash", func(t *testing.T) {
		salt1, hash1, err := HashPassword("same password")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		salt2, hash2, err := HashPassword("same password")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if bytes.Equal(salt1, salt2) {
			t.Error("expected distinct salts")
		}
		if bytes.Equal(hash1, hash2) {
			t.Error("expected distinct hashes for distinct salts")
		}
	})
}

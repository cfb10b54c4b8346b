package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals plaintext")
	}

	if err := ComparePassword(hash, "secret123"); err != nil {
		t.Fatalf("ComparePassword rejected correct password: %v", err)
	}
	if err := ComparePassword(hash, "wrong-pass"); err == nil {
		t.Fatal("ComparePassword accepted wrong password")
	}
}

func TestHashPassword_InvalidCost(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword("secret123", bcrypt.MaxCost+1); err == nil {
		t.Fatal("expected error for cost above bcrypt maximum")
	}
}

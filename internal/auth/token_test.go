package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/account-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-123",
		Name:  "Ann",
		Email: "a@x.com",
		Role:  domain.RoleUser,
	}
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)
	user := testUser()

	tok, exp, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	claims, err := tm.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, user.ID)
	}
	if claims.Email != user.Email {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, user.Email)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, domain.RoleUser)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("secret"), ttl: -time.Minute}

	tok, _, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = tm.ParseToken(tok)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenManager("right-secret", time.Hour).GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = NewTokenManager("wrong-secret", time.Hour).ParseToken(tok)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseToken_WrongSigningMethod(t *testing.T) {
	t.Parallel()

	secret := "shared-secret"
	claims := &Claims{
		Email: "a@x.com",
		Role:  domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = NewTokenManager(secret, time.Hour).ParseToken(tok)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", time.Hour).ParseToken("not.a.jwt")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

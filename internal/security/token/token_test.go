package token

import (
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("super-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer err: %v", err)
	}

	raw, err := iss.Sign("user-123")
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}

	id, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if id != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", id, "user-123")
	}
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	if _, err := NewIssuer("", time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("want ErrEmptySecret, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	a, _ := NewIssuer("secret-a", time.Hour)
	b, _ := NewIssuer("secret-b", time.Hour)

	raw, err := a.Sign("user-123")
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	if _, err := b.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	iss, _ := NewIssuer("super-secret", time.Hour)

	// exp en el pasado, firmado con el mismo secreto
	claims := jwtv5.MapClaims{
		"id":  "user-123",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	raw, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte("super-secret"))
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	if _, err := iss.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerify_NoExpiry(t *testing.T) {
	// ttl 0: el token no lleva exp y sigue siendo válido
	iss, _ := NewIssuer("super-secret", 0)

	raw, err := iss.Sign("user-123")
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	if _, err := iss.Verify(raw); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
}

func TestVerify_RejectsAlgNone(t *testing.T) {
	iss, _ := NewIssuer("super-secret", time.Hour)

	claims := jwtv5.MapClaims{"id": "user-123"}
	raw, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims).
		SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	if _, err := iss.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("alg=none must be rejected, got %v", err)
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	iss, _ := NewIssuer("super-secret", time.Hour)

	claims := jwtv5.MapClaims{"iat": time.Now().Unix()}
	raw, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte("super-secret"))
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	if _, err := iss.Verify(raw); !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("want ErrMissingSubject, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	iss, _ := NewIssuer("super-secret", time.Hour)
	if _, err := iss.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

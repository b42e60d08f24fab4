package utils

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("secret", 42, "interviewer", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	claims, err := VerifyToken(req, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims["role"] != "interviewer" {
		t.Fatalf("expected role claim, got %v", claims["role"])
	}

	id, err := GetUserIDFromClaims(claims)
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if id != "42" {
		t.Fatalf("expected 42, got %s", id)
	}
}

func TestVerifyTokenMissingHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, err := VerifyToken(req, "secret"); !errors.Is(err, ErrMissingAuthHeader) {
		t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret", 1, "candidate", time.Hour)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	if _, err := VerifyToken(req, "other"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, _ := GenerateToken("secret", 1, "candidate", -time.Minute)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	if _, err := VerifyToken(req, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTokenRejectsWrongSigningMethod(t *testing.T) {
	orig := parseJWT
	defer func() { parseJWT = orig }()

	// simulate a token signed with an unexpected method reaching the parser
	parseJWT = func(string, jwt.Keyfunc) (*jwt.Token, error) {
		return nil, jwt.ErrTokenUnverifiable
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	if _, err := VerifyToken(req, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromNumericClaim(t *testing.T) {
	id, err := GetUserIDFromClaims(jwt.MapClaims{"sub": float64(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "7" {
		t.Fatalf("expected 7, got %s", id)
	}
}

func TestGetUserIDMissingClaim(t *testing.T) {
	if _, err := GetUserIDFromClaims(jwt.MapClaims{}); err == nil {
		t.Fatal("expected an error for a missing sub claim")
	}
}

package utils

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", "bedtime-story-api")

	pair, err := m.GenerateTokenPair("user-1", "user", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("token pair must not be empty")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}

	access, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken(access) error: %v", err)
	}
	if access.UserID != "user-1" || access.Role != "user" || access.Type != "access" {
		t.Errorf("access claims = %+v", access)
	}
	if access.Issuer != "bedtime-story-api" {
		t.Errorf("issuer = %q", access.Issuer)
	}

	refresh, err := m.ParseToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ParseToken(refresh) error: %v", err)
	}
	if refresh.Type != "refresh" {
		t.Errorf("refresh type = %q", refresh.Type)
	}
}

func TestJWTManagerExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", "bedtime-story-api")

	token, err := m.GenerateToken("user-1", "user", "access", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestJWTManagerWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", "bedtime-story-api")
	other := NewJWTManager("another-secret", "bedtime-story-api")

	token, err := m.GenerateToken("user-1", "user", "access", time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrInvalidToken)
	}

	if _, err := m.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseToken(garbage) error = %v, want %v", err, ErrInvalidToken)
	}
}

package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user_1", secret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetUserIDFromToken(token, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if got != "user_1" {
		t.Fatalf("want user_1, got %s", got)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken("user_1", []byte("secret-a"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := GetUserIDFromToken(token, []byte("secret-b")); err == nil {
		t.Fatal("expected verification error")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user_1", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := GetUserIDFromToken(token, secret); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := GetUserIDFromToken("not.a.token", []byte("s")); err == nil {
		t.Fatal("expected parse error")
	}
}

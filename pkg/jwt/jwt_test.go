package jwt

import (
	"testing"
	"time"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.Generate("seed-admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "seed-admin" {
		t.Errorf("subject = %q", claims.Subject)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("right-secret", time.Hour).Generate("svc")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := NewManager("wrong-secret", time.Hour).Verify(token); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.Generate("svc")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := manager.Verify(token); err == nil {
		t.Fatal("expected verification failure for expired token")
	}
}

package security

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("Abcdef12")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.Contains(encoded, ":") {
		t.Fatalf("expected salt:hash encoding, got %q", encoded)
	}

	match, err := VerifyPassword("Abcdef12", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
	if !match {
		t.Fatal("expected password to verify against its own hash")
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	encoded, err := HashPassword("Abcdef12")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	match, err := VerifyPassword("Abcdef13", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
	if match {
		t.Fatal("wrong password must not verify")
	}
}

func TestVerifyPasswordEmptyInputs(t *testing.T) {
	if match, err := VerifyPassword("", "anything"); err != nil || match {
		t.Fatalf("empty password must not verify, got match=%v err=%v", match, err)
	}
	if match, err := VerifyPassword("password", ""); err != nil || match {
		t.Fatalf("empty hash must not verify, got match=%v err=%v", match, err)
	}
}

func TestVerifyPasswordInvalidFormat(t *testing.T) {
	if _, err := VerifyPassword("password", "no-separator"); err == nil {
		t.Fatal("expected error for malformed hash encoding")
	}
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("Abcdef12")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("Abcdef12")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password must differ by salt")
	}
}

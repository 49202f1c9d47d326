package service

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	InitJWT()
	os.Exit(m.Run())
}

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	id, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 42 {
		t.Fatalf("got id %d, want 42", id)
	}
}

func TestJWT_InvalidToken(t *testing.T) {
	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestJWT_TamperedToken(t *testing.T) {
	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseJWT(tampered); err == nil {
		t.Fatal("expected error for tampered signature")
	}
}

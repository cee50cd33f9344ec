// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/argon2"
)

func TestHashPassword_Format(t *testing.T) {
	encoded, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=65536,t=1,p=4$") {
		t.Errorf("unexpected PHC prefix: %s", encoded)
	}
	if parts := strings.Split(encoded, "$"); len(parts) != 6 {
		t.Errorf("expected 6 dollar-separated sections, got %d", len(parts))
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("first hash failed: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("second hash failed: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password must differ (random salt)")
	}
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	encoded, err := HashPassword("field-agent-42")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	ok, err := VerifyPassword("field-agent-42", encoded)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !ok {
		t.Error("expected correct password to verify")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	encoded, err := HashPassword("field-agent-42")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	ok, err := VerifyPassword("field-agent-43", encoded)
	if err != nil {
		t.Fatalf("expected clean mismatch without error, got: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail verification")
	}
}

func TestVerifyPassword_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty string", ""},
		{"not a PHC string", "plain-sha256-hex"},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
		{"bad base64 salt", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword("whatever", tt.encoded)
			if !errors.Is(err, ErrMalformedPasswordHash) {
				t.Errorf("expected ErrMalformedPasswordHash, got: %v", err)
			}
		})
	}
}

func TestVerifyPassword_ParamsFromHash(t *testing.T) {
	// a hash produced with different tuning parameters must still verify:
	// the parameters are read from the encoded string, not from the
	// package constants
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte("field-agent-42"), salt, 2, 32*1024, 2, 32)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 32*1024, 2, 2,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	ok, err := VerifyPassword("field-agent-42", encoded)
	if err != nil {
		t.Fatalf("well-formed hash must parse, got: %v", err)
	}
	if !ok {
		t.Error("expected password to verify under the embedded parameters")
	}
}

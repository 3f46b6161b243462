package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "Sunny#Day7"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == password {
		t.Fatal("HashPassword() returned plaintext password")
	}

	// Verify it's a valid bcrypt hash
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		t.Errorf("HashPassword() produced invalid bcrypt hash: %v", err)
	}
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	password := "same-password"
	hash1, _ := HashPassword(password)
	hash2, _ := HashPassword(password)

	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for same password (no salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "correct password", password: "correct-password", wantErr: nil},
		{name: "wrong password", password: "wrong-password", wantErr: ErrPasswordMismatch},
		{name: "empty password", password: "", wantErr: ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(hash, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashPassword_LongPassword(t *testing.T) {
	// 128 characters, past bcrypt's 72 byte limit
	long := strings.Repeat("Ab1!", 32)
	hash, err := HashPassword(long)
	if err != nil {
		t.Fatalf("HashPassword() failed for long password: %v", err)
	}
	if err := VerifyPassword(hash, long); err != nil {
		t.Errorf("VerifyPassword() failed for long password: %v", err)
	}

	// Differs only after byte 72
	other := long[:100] + strings.Repeat("z", 28)
	if err := VerifyPassword(hash, other); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("VerifyPassword() error = %v, want ErrPasswordMismatch", err)
	}
}

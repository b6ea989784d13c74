package application

import (
	"errors"
	"testing"
)

var testArgon2idParams = Argon2idParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func TestPasswordHashRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := CreatePasswordHash("abis rokok", testArgon2idParams)
	if err != nil {
		t.Fatalf("CreatePasswordHash: %v", err)
	}
	if !IsPasswordHash(hash) {
		t.Fatalf("expected encoded hash, got %q", hash)
	}
	if err := VerifyPassword(hash, "abis rokok"); err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if err := VerifyPassword(hash, "salah"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := VerifyPassword("$argon2id$garbage", "x"); !errors.Is(err, ErrInvalidPasswordHash) {
		t.Fatalf("expected ErrInvalidPasswordHash, got %v", err)
	}
}

func TestCheckAdminPassword(t *testing.T) {
	t.Parallel()

	hash, err := CreatePasswordHash("rahasia", testArgon2idParams)
	if err != nil {
		t.Fatalf("CreatePasswordHash: %v", err)
	}

	tests := []struct {
		name    string
		stored  string
		given   string
		wantErr bool
	}{
		{name: "no password stored", stored: "", given: "anything"},
		{name: "legacy plaintext match", stored: "abis rokok", given: "abis rokok"},
		{name: "legacy plaintext mismatch", stored: "abis rokok", given: "abis", wantErr: true},
		{name: "hash match", stored: hash, given: "rahasia"},
		{name: "hash mismatch", stored: hash, given: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := checkAdminPassword(tt.stored, tt.given); (err != nil) != tt.wantErr {
				t.Fatalf("checkAdminPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/office-agenda/internal/testfixtures"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	hash, err := CreatePasswordHash("kopi pahit", testArgon2idParams)
	if err != nil {
		t.Fatalf("CreatePasswordHash: %v", err)
	}
	hashed := testfixtures.NewIdentity(testfixtures.WithIdentityID("a2"), testfixtures.WithUsername("kepala"), testfixtures.AsAdmin(hash))
	open := testfixtures.NewIdentity(testfixtures.WithIdentityID("a3"), testfixtures.WithUsername("tanpa"), testfixtures.AsAdmin(""))

	store, _ := newTestStore(t, testfixtures.NewSnapshot().WithIdentities(hashed, open).Build())
	service := NewAuthService(store, nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		ref      string
		password string
		wantID   string
		wantErr  error
	}{
		{name: "user by id", ref: "u2", wantID: "u2"},
		{name: "user by username ignoring case", ref: "pemdes", wantID: "u2"},
		{name: "user ignores password", ref: "TTG", password: "anything", wantID: "u4"},
		{name: "legacy plaintext admin", ref: "u1", password: "abis rokok", wantID: "u1"},
		{name: "legacy plaintext mismatch", ref: "u1", password: "salah", wantErr: ErrInvalidCredentials},
		{name: "hashed admin", ref: "kepala", password: "kopi pahit", wantID: "a2"},
		{name: "hashed admin mismatch", ref: "a2", password: "kopi manis", wantErr: ErrInvalidCredentials},
		{name: "unguarded admin", ref: "a3", wantID: "a3"},
		{name: "unknown identity", ref: "siapa", wantErr: ErrNotFound},
		{name: "blank ref", ref: " ", wantErr: ErrNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			identity, err := service.Login(ctx, tc.ref, tc.password)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if identity.ID != "" {
					t.Fatalf("failed login leaked identity %+v", identity)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if identity.ID != tc.wantID {
				t.Fatalf("expected %s, got %s", tc.wantID, identity.ID)
			}
		})
	}
}

func TestIdentitiesListsDefaults(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, testfixtures.NewSnapshot().Build())
	identities := NewAuthService(store, nil).Identities()
	if len(identities) != 5 || identities[0].ID != "u1" {
		t.Fatalf("unexpected identities %+v", identities)
	}
}

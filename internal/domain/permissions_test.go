package domain

import (
	"testing"
	"time"
)

func TestCanManageSettings(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 10, 18, 14, 0, 0, 0, time.Local)

	cases := []struct {
		name     string
		identity Identity
		want     bool
	}{
		{name: "admin", identity: Identity{Role: RoleAdmin}, want: true},
		{name: "plain user", identity: Identity{Role: RoleUser}, want: false},
		{name: "user elevated today", identity: Identity{Role: RoleUser, TempAdminAccessDate: "2026-10-18"}, want: true},
		{name: "user elevated yesterday", identity: Identity{Role: RoleUser, TempAdminAccessDate: "2026-10-17"}, want: false},
		{name: "user with malformed stamp", identity: Identity{Role: RoleUser, TempAdminAccessDate: "18/10/2026"}, want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CanManageSettings(tc.identity, today); got != tc.want {
				t.Fatalf("CanManageSettings = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanGrantAccessRequiresAdminRole(t *testing.T) {
	t.Parallel()

	elevated := Identity{Role: RoleUser, TempAdminAccessDate: FormatDate(time.Now())}
	if CanGrantAccess(elevated) {
		t.Fatalf("elevated user must not grant access")
	}
	if !CanGrantAccess(Identity{Role: RoleAdmin}) {
		t.Fatalf("admin must grant access")
	}
}

func TestHasNIP(t *testing.T) {
	t.Parallel()

	for value, want := range map[string]bool{"": false, "-": false, "19800101": true} {
		if got := HasNIP(value); got != want {
			t.Fatalf("HasNIP(%q) = %v, want %v", value, got, want)
		}
	}
}

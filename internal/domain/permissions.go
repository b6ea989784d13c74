package domain

import "time"

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// HasTemporaryAccess reports whether a non-admin identity holds an elevation
// stamp for the calendar day of today.
func HasTemporaryAccess(identity Identity, today time.Time) bool {
	if identity.IsAdmin() || identity.TempAdminAccessDate == "" {
		return false
	}
	return identity.TempAdminAccessDate == FormatDate(today)
}

// CanManageSettings gates the letterhead, database, and roster editing
// capabilities.
func CanManageSettings(identity Identity, today time.Time) bool {
	return identity.IsAdmin() || HasTemporaryAccess(identity, today)
}

// CanGrantAccess gates handing out or revoking temporary elevation. Elevated
// identities cannot extend their own grant.
func CanGrantAccess(identity Identity) bool {
	return identity.IsAdmin()
}

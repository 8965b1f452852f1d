package user

import "time"

// User is the caller profile stored in the users collection. Accounts are
// provisioned by the identity workflow; this service only reads them to
// check role flags.
type User struct {
	ID           string
	Email        string
	DisplayName  *string
	IsAdmin      bool
	IsOwner      bool
	IsSuperAdmin bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasElevatedRole reports whether the profile carries any role allowed to
// run payroll operations.
func (u User) HasElevatedRole() bool {
	return u.IsAdmin || u.IsOwner || u.IsSuperAdmin
}

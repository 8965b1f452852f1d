package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user profile not found")
	ErrElevatedAccessRequired = errors.New("admin, owner or super_admin role required")
)

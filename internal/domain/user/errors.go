package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrAdminRequired      = errors.New("admin privilege required")
	ErrPermissionRequired = errors.New("insufficient permissions")
)

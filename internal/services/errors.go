package services

import "errors"

var (
	ErrUnauthenticated  = errors.New("user not authenticated")
	ErrAppNotFound      = errors.New("app not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotOwner         = errors.New("permission denied")
	ErrIdentityConflict = errors.New("identity conflict, please retry")
	ErrInvalidApp       = errors.New("invalid app")
)

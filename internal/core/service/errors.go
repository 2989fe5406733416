package service

import "errors"

var (
	// ErrUsernameTaken is returned on registration when the username exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned on login for an unknown username or
	// a password mismatch. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInvalidSession is returned for a missing, malformed or expired
	// session token.
	ErrInvalidSession = errors.New("invalid session")

	// ErrUserNotFound is returned when a valid session references a user
	// that no longer exists (deleted via the admin CLI).
	ErrUserNotFound = errors.New("user not found")
)

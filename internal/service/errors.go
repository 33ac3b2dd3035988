package service

import "errors"

// Sentinel errors the handler maps to response error kinds. Raw storage
// errors never reach the caller.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotAuthorized covers a missing/invalid session token as well as a
	// mutation on an entity the user does not own or cannot see. For
	// update/delete it is deliberately indistinguishable from "not found".
	ErrNotAuthorized = errors.New("not authorized")

	ErrUsernameTaken    = errors.New("username taken")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingField     = errors.New("username and password are required")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrEmptyChannelName = errors.New("channel name is empty")
)

// Package common defines shared constants and sentinel errors used across
// the server and client layers of the account-leasing service. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level input errors.
	ErrorValidation = errors.New("validation error")

	// Account-specific errors.
	ErrDuplicateLogin = errors.New("login already exists")

	// Lease errors.
	ErrAlreadyLocked = errors.New("already locked")
)

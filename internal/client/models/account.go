// Package models defines the client-side view of accounts and lease results
// as returned by the botofarm HTTP API.
package models

import (
	"fmt"
	"time"
)

// Account mirrors the server's account view. The credential is never sent.
type Account struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Login        string    `json:"login"`
	ProjectID    string    `json:"project_id"`
	Env          string    `json:"env"`
	Domain       string    `json:"domain"`
	LockExpiryAt *int64    `json:"lock_expiry_at"`
}

// LockState renders the lease field for display.
func (a *Account) LockState() string {
	if a.LockExpiryAt == nil {
		return "-"
	}
	return time.Unix(*a.LockExpiryAt, 0).UTC().Format(time.RFC3339)
}

func (a *Account) String() string {
	return fmt.Sprintf("%s  %-30s  %-8s %-8s project=%s lock=%s", a.ID, a.Login, a.Env, a.Domain, a.ProjectID, a.LockState())
}

// NewAccount is the registration payload.
type NewAccount struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	ProjectID string `json:"project_id"`
	Env       string `json:"env"`
	Domain    string `json:"domain,omitempty"`
}

// LockResult is the body of the lock and unlock endpoints.
type LockResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	LockExpiryAt *int64 `json:"lock_expiry_at,omitempty"`
}

// FieldError is one entry of a 422 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

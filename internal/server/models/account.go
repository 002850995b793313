// Package models holds the server-side domain types.
package models

import (
	"fmt"
	"time"
)

// LeaseDuration is how long an acquired lease stays in force.
const LeaseDuration = 30 * time.Minute

// LeaseDurationSeconds is LeaseDuration in the unit stored in LockExpiryAt.
const LeaseDurationSeconds = int64(LeaseDuration / time.Second)

type Env string

const (
	EnvProd    Env = "prod"
	EnvPreprod Env = "preprod"
	EnvStage   Env = "stage"
)

type Domain string

const (
	DomainCanary  Domain = "canary"
	DomainRegular Domain = "regular"
)

// Account is a registered login that workers lease.
//
// LockExpiryAt is the unix time (seconds) at which the current lease was
// acquired; nil means the account was never locked or has been released.
// Whether the account is locked is derived from it, see IsLocked.
type Account struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	ProjectID    string    `json:"project_id"`
	Env          Env       `json:"env"`
	Domain       Domain    `json:"domain"`
	LockExpiryAt *int64    `json:"lock_expiry_at"`
}

// IsLocked reports whether a lease is in force at now (unix seconds).
// A lease acquired exactly LeaseDurationSeconds ago has expired.
func (a *Account) IsLocked(now int64) bool {
	if a.LockExpiryAt == nil {
		return false
	}
	return now-*a.LockExpiryAt < LeaseDurationSeconds
}

func ParseEnv(s string) (Env, error) {
	switch e := Env(s); e {
	case EnvProd, EnvPreprod, EnvStage:
		return e, nil
	default:
		return "", fmt.Errorf("unknown env %q", s)
	}
}

// ParseDomain validates s; the empty string selects DomainRegular.
func ParseDomain(s string) (Domain, error) {
	switch d := Domain(s); d {
	case "":
		return DomainRegular, nil
	case DomainCanary, DomainRegular:
		return d, nil
	default:
		return "", fmt.Errorf("unknown domain %q", s)
	}
}

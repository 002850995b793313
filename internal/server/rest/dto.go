package rest

import (
	"time"

	"github.com/dmitrijs2005/botofarm/internal/server/models"
)

const (
	msgLocked        = "User locked successfully"
	msgAlreadyLocked = "User already locked"
	msgUnlocked      = "User unlocked successfully"
	msgNotFound      = "User not found"
	msgDuplicate     = "User with this login already exists"
	msgInternal      = "internal error"
)

type createAccountRequest struct {
	Login     string `json:"login" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	ProjectID string `json:"project_id" binding:"required,uuid"`
	Env       string `json:"env" binding:"required,oneof=prod preprod stage"`
	Domain    string `json:"domain" binding:"omitempty,oneof=canary regular"`
}

type listQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=0"`
}

type accountURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type accountResponse struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Login        string    `json:"login"`
	ProjectID    string    `json:"project_id"`
	Env          string    `json:"env"`
	Domain       string    `json:"domain"`
	LockExpiryAt *int64    `json:"lock_expiry_at"`
}

func newAccountResponse(a *models.Account) accountResponse {
	return accountResponse{
		ID:           a.ID,
		CreatedAt:    a.CreatedAt,
		Login:        a.Login,
		ProjectID:    a.ProjectID,
		Env:          string(a.Env),
		Domain:       string(a.Domain),
		LockExpiryAt: a.LockExpiryAt,
	}
}

type lockResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	LockExpiryAt *int64 `json:"lock_expiry_at,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

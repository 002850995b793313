package client

import (
	"context"

	"github.com/dmitrijs2005/botofarm/internal/client/models"
)

type Client interface {
	CreateAccount(ctx context.Context, req models.NewAccount) (*models.Account, error)
	ListAccounts(ctx context.Context, skip, limit int) ([]*models.Account, error)
	Lock(ctx context.Context, id string) (*models.LockResult, error)
	Unlock(ctx context.Context, id string) (*models.LockResult, error)
	Health(ctx context.Context) error
	Ready(ctx context.Context) error
}

// Package accounts is the account store: durable CRUD over account records
// and the single source of truth for their lease field.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/botofarm/internal/server/models"
)

type Repository interface {
	// Create inserts account (ID must be set) and fills CreatedAt.
	// A login collision yields common.ErrDuplicateLogin.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByLogin(ctx context.Context, login string) (*models.Account, error)
	// List returns accounts in creation order.
	List(ctx context.Context, offset, limit int) ([]*models.Account, error)
	// SetLockExpiry overwrites lock_expiry_at (nil clears it) and reports
	// whether the account exists.
	SetLockExpiry(ctx context.Context, id string, value *int64) (bool, error)
	// AcquireLock sets lock_expiry_at to now only if the account is unlocked,
	// i.e. the field is NULL or not later than staleBefore. It reports
	// whether the row was updated.
	AcquireLock(ctx context.Context, id string, now, staleBefore int64) (bool, error)
}

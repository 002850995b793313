package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/botofarm/internal/common"
	"github.com/dmitrijs2005/botofarm/internal/dbx"
	"github.com/dmitrijs2005/botofarm/internal/logging"
	"github.com/dmitrijs2005/botofarm/internal/server/models"
	"github.com/dmitrijs2005/botofarm/internal/server/repositories/repomanager"
	"github.com/juju/clock"
)

// LeaseService hands out and takes back exclusive time-boxed leases on
// accounts. Expired leases are never swept; they simply stop counting.
type LeaseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
	log         logging.Logger
}

func NewLeaseService(db *sql.DB, m repomanager.RepositoryManager, clk clock.Clock, log logging.Logger) *LeaseService {
	return &LeaseService{
		db:          db,
		repomanager: m,
		clock:       clk,
		log:         log.With("module", "lease"),
	}
}

func (s *LeaseService) now() int64 {
	return s.clock.Now().Unix()
}

// Acquire locks the account and returns the new lock_expiry_at value.
// It fails with common.ErrorNotFound for an unknown id and with
// common.ErrAlreadyLocked while another lease is in force.
func (s *LeaseService) Acquire(ctx context.Context, id string) (int64, error) {

	now := s.now()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if account.IsLocked(now) {
			return common.ErrAlreadyLocked
		}

		// the conditional update loses to a concurrent acquirer that
		// committed after our read
		ok, err := repo.AcquireLock(ctx, id, now, now-models.LeaseDurationSeconds)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrAlreadyLocked
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrAlreadyLocked) {
			return 0, err
		}
		return 0, fmt.Errorf("error acquiring lease: %w", err)
	}

	s.log.Debug(ctx, "lease acquired", "account_id", id, "lock_expiry_at", now)

	return now, nil
}

// Release clears the lease. Releasing an unlocked account succeeds.
func (s *LeaseService) Release(ctx context.Context, id string) error {

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}

		ok, err := repo.SetLockExpiry(ctx, id, nil)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error releasing lease: %w", err)
	}

	s.log.Debug(ctx, "lease released", "account_id", id)

	return nil
}

// IsLocked reports whether the account's lease is in force right now.
func (s *LeaseService) IsLocked(account *models.Account) bool {
	return account.IsLocked(s.now())
}

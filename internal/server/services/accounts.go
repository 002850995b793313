package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/botofarm/internal/common"
	"github.com/dmitrijs2005/botofarm/internal/cryptox"
	"github.com/dmitrijs2005/botofarm/internal/dbx"
	"github.com/dmitrijs2005/botofarm/internal/logging"
	"github.com/dmitrijs2005/botofarm/internal/server/models"
	"github.com/dmitrijs2005/botofarm/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AccountDraft is the validated input for CreateAccount.
type AccountDraft struct {
	Login     string
	Password  string
	ProjectID string
	Env       models.Env
	Domain    models.Domain
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "accounts"),
	}
}

// hashPassword is a seam for tests.
var hashPassword = func(password []byte) (string, error) {
	return cryptox.HashPassword(password)
}

// CreateAccount registers a new account with no lease.
// A taken login yields common.ErrDuplicateLogin.
func (s *AccountService) CreateAccount(ctx context.Context, draft AccountDraft) (*models.Account, error) {

	env, err := models.ParseEnv(string(draft.Env))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	domain, err := models.ParseDomain(string(draft.Domain))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	password := []byte(draft.Password)
	hash, err := hashPassword(password)
	common.WipeByteArray(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Login:        draft.Login,
		PasswordHash: hash,
		ProjectID:    draft.ProjectID,
		Env:          env,
		Domain:       domain,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		_, err := repo.GetByLogin(ctx, draft.Login)
		if err == nil {
			return common.ErrDuplicateLogin
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking login: %w", err)
		}

		account, err = repo.Create(ctx, account)
		if err != nil {
			if errors.Is(err, common.ErrDuplicateLogin) {
				return err
			}
			return fmt.Errorf("error creating account: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "account created", "account_id", account.ID, "project_id", account.ProjectID, "env", account.Env)

	return account, nil
}

// ListAccounts returns a page of accounts in creation order.
func (s *AccountService) ListAccounts(ctx context.Context, skip, limit int) ([]*models.Account, error) {

	repo := s.repomanager.Accounts(s.db)

	accounts, err := repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}

	return accounts, nil
}

// Ping reports whether the backing store is reachable.
func (s *AccountService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

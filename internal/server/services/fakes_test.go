package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/botofarm/internal/common"
	"github.com/dmitrijs2005/botofarm/internal/cryptox"
	"github.com/dmitrijs2005/botofarm/internal/dbx"
	"github.com/dmitrijs2005/botofarm/internal/server/models"
	"github.com/dmitrijs2005/botofarm/internal/server/repositories/accounts"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func fastHash(t *testing.T) {
	t.Helper()
	orig := hashPassword
	hashPassword = func(password []byte) (string, error) {
		return cryptox.HashPasswordWithParams(password, cryptox.Params{Memory: 64, Time: 1, Threads: 1, SaltLen: 8, KeyLen: 16})
	}
	t.Cleanup(func() { hashPassword = orig })
}

// memAccountsRepo keeps accounts in memory and mimics the SQL semantics of
// the postgres repository, including the conditional lock update.
type memAccountsRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Account
	seq  int

	// optional failure injection
	getErr     error
	createErr  error
	listErr    error
	acquireErr error
	setErr     error
	// loseRace makes AcquireLock report that nothing was updated.
	loseRace bool

	acquireCalls int
	createCalls  int
}

var _ accounts.Repository = (*memAccountsRepo)(nil)

func newMemAccountsRepo() *memAccountsRepo {
	return &memAccountsRepo{rows: map[string]*models.Account{}}
}

func clone(a *models.Account) *models.Account {
	c := *a
	if a.LockExpiryAt != nil {
		v := *a.LockExpiryAt
		c.LockExpiryAt = &v
	}
	return &c
}

func (r *memAccountsRepo) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, row := range r.rows {
		if row.Login == a.Login {
			return nil, common.ErrDuplicateLogin
		}
	}
	r.seq++
	a.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	r.rows[a.ID] = clone(a)
	return a, nil
}

func (r *memAccountsRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	a, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(a), nil
}

func (r *memAccountsRepo) GetByLogin(_ context.Context, login string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, a := range r.rows {
		if a.Login == login {
			return clone(a), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memAccountsRepo) List(_ context.Context, offset, limit int) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	all := make([]*models.Account, 0, len(r.rows))
	for _, a := range r.rows {
		all = append(all, clone(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	if offset >= len(all) {
		return []*models.Account{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memAccountsRepo) SetLockExpiry(_ context.Context, id string, value *int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setErr != nil {
		return false, r.setErr
	}
	a, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	if value == nil {
		a.LockExpiryAt = nil
	} else {
		v := *value
		a.LockExpiryAt = &v
	}
	return true, nil
}

func (r *memAccountsRepo) AcquireLock(_ context.Context, id string, now, staleBefore int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acquireCalls++
	if r.acquireErr != nil {
		return false, r.acquireErr
	}
	if r.loseRace {
		return false, nil
	}
	a, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	if a.LockExpiryAt != nil && *a.LockExpiryAt > staleBefore {
		return false, nil
	}
	v := now
	a.LockExpiryAt = &v
	return true, nil
}

func (r *memAccountsRepo) put(a *models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[a.ID] = clone(a)
}

type fakeRepoManager struct {
	a *memAccountsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository   { return m.a }

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/botofarm/internal/common"
	"github.com/dmitrijs2005/botofarm/internal/cryptox"
	"github.com/dmitrijs2005/botofarm/internal/logging"
	"github.com/dmitrijs2005/botofarm/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (*AccountService, *memAccountsRepo, func(commit bool)) {
	t.Helper()
	fastHash(t)
	db, mock := newSQLMockDB(t)
	repo := newMemAccountsRepo()
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("sql expectations: %v", err)
		}
	})
	return NewAccountService(db, &fakeRepoManager{a: repo}, logging.Nop{}), repo, func(commit bool) { expectTx(mock, commit) }
}

func draft(login string) AccountDraft {
	return AccountDraft{
		Login:     login,
		Password:  "secret123",
		ProjectID: "0d5d2c1e-2d8e-4c4b-9d2b-1f9b3b7a9e11",
		Env:       models.EnvProd,
	}
}

func TestCreateAccount_Success(t *testing.T) {
	s, repo, tx := newAccountService(t)
	tx(true)

	a, err := s.CreateAccount(context.Background(), draft("bot1@example.com"))
	require.NoError(t, err)

	_, err = uuid.Parse(a.ID)
	assert.NoError(t, err)
	assert.Equal(t, "bot1@example.com", a.Login)
	assert.Equal(t, models.DomainRegular, a.Domain)
	assert.Nil(t, a.LockExpiryAt)
	assert.False(t, a.IsLocked(1<<40))

	ok, err := cryptox.VerifyPassword([]byte("secret123"), a.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotContains(t, a.PasswordHash, "secret123")

	assert.Equal(t, 1, repo.createCalls)
}

func TestCreateAccount_KeepsDomain(t *testing.T) {
	s, _, tx := newAccountService(t)
	tx(true)

	d := draft("canary@example.com")
	d.Domain = models.DomainCanary
	d.Env = models.EnvStage

	a, err := s.CreateAccount(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, models.DomainCanary, a.Domain)
	assert.Equal(t, models.EnvStage, a.Env)
}

func TestCreateAccount_DuplicateLoginRegardlessOfOtherFields(t *testing.T) {
	s, repo, tx := newAccountService(t)

	tx(true)
	_, err := s.CreateAccount(context.Background(), draft("dup@example.com"))
	require.NoError(t, err)

	other := AccountDraft{
		Login:     "dup@example.com",
		Password:  "another-password",
		ProjectID: uuid.NewString(),
		Env:       models.EnvStage,
		Domain:    models.DomainCanary,
	}
	tx(false)
	_, err = s.CreateAccount(context.Background(), other)
	assert.ErrorIs(t, err, common.ErrDuplicateLogin)
	assert.Equal(t, 1, repo.createCalls)
}

func TestCreateAccount_UniqueViolationFromStore(t *testing.T) {
	s, repo, tx := newAccountService(t)
	repo.createErr = common.ErrDuplicateLogin

	tx(false)
	_, err := s.CreateAccount(context.Background(), draft("race@example.com"))
	assert.ErrorIs(t, err, common.ErrDuplicateLogin)
}

func TestCreateAccount_StoreFailure(t *testing.T) {
	s, repo, tx := newAccountService(t)
	repo.getErr = errors.New("db down")

	tx(false)
	_, err := s.CreateAccount(context.Background(), draft("x@example.com"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrDuplicateLogin)
	assert.Contains(t, err.Error(), "db down")
}

func TestCreateAccount_HashFailure(t *testing.T) {
	s, repo, _ := newAccountService(t)
	hashPassword = func([]byte) (string, error) { return "", errors.New("no entropy") }

	_, err := s.CreateAccount(context.Background(), draft("x@example.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entropy")
	assert.Zero(t, repo.createCalls)
}

func TestListAccounts(t *testing.T) {
	s, _, tx := newAccountService(t)

	for _, l := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		tx(true)
		_, err := s.CreateAccount(context.Background(), draft(l))
		require.NoError(t, err)
	}

	all, err := s.ListAccounts(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a@x.io", all[0].Login)

	page, err := s.ListAccounts(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b@x.io", page[0].Login)

	empty, err := s.ListAccounts(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListAccounts_Error(t *testing.T) {
	s, repo, _ := newAccountService(t)
	repo.listErr = errors.New("boom")

	_, err := s.ListAccounts(context.Background(), 0, 10)
	assert.ErrorContains(t, err, "boom")
}

func TestCreateAccount_RejectsUnknownEnvAndDomain(t *testing.T) {
	s, repo, _ := newAccountService(t)

	d := draft("x@example.com")
	d.Env = "dev"
	_, err := s.CreateAccount(context.Background(), d)
	assert.ErrorIs(t, err, common.ErrorValidation)

	d = draft("x@example.com")
	d.Domain = "blue"
	_, err = s.CreateAccount(context.Background(), d)
	assert.ErrorIs(t, err, common.ErrorValidation)

	assert.Zero(t, repo.createCalls)
}

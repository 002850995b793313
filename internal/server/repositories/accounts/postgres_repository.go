package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/botofarm/internal/common"
	"github.com/dmitrijs2005/botofarm/internal/dbx"
	"github.com/dmitrijs2005/botofarm/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const selectColumns = `id, created_at, login, password_hash, project_id, env, domain, lock_expiry_at`

type PostgresRepository struct {
	db dbx.DBTX
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	a := &models.Account{}
	var lockExpiryAt sql.NullInt64

	err := row.Scan(&a.ID, &a.CreatedAt, &a.Login, &a.PasswordHash, &a.ProjectID, &a.Env, &a.Domain, &lockExpiryAt)
	if err != nil {
		return nil, err
	}
	if lockExpiryAt.Valid {
		v := lockExpiryAt.Int64
		a.LockExpiryAt = &v
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO users (id, login, password_hash, project_id, env, domain)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Login, account.PasswordHash, account.ProjectID, account.Env, account.Domain).Scan(&account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrDuplicateLogin
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE id = $1`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE login = $1`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, login))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM users ORDER BY created_at, id OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) SetLockExpiry(ctx context.Context, id string, value *int64) (bool, error) {
	query := `UPDATE users SET lock_expiry_at = $2 WHERE id = $1`

	var arg sql.NullInt64
	if value != nil {
		arg = sql.NullInt64{Int64: *value, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, id, arg)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

func (r *PostgresRepository) AcquireLock(ctx context.Context, id string, now, staleBefore int64) (bool, error) {
	query :=
		`UPDATE users SET lock_expiry_at = $2
		 WHERE id = $1 AND (lock_expiry_at IS NULL OR lock_expiry_at <= $3)
		 `

	res, err := r.db.ExecContext(ctx, query, id, now, staleBefore)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

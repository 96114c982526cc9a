package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"realmbot/internal/domain"

	"github.com/lib/pq"
)

const defaultTimeout = 5 * time.Second

// Unique constraint names from the accounts migration
const (
	constraintLogin      = "accounts_login_key"
	constraintTelegramID = "accounts_telegram_id_key"
)

// AccountRepo implements repository.AccountRepository
type AccountRepo struct {
	db      *sql.DB
	timeout time.Duration
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db, timeout: defaultTimeout}
}

// mapError translates driver errors into domain errors. Uniqueness
// conflicts come from the store's constraints, everything transient
// becomes ErrStoreUnavailable so the engine can tell the user to retry.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		switch pqErr.Constraint {
		case constraintLogin:
			return domain.ErrDuplicateLogin
		case constraintTelegramID:
			return domain.ErrDuplicateTelegramUser
		}
		return domain.ErrDuplicateLogin
	}

	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// Create inserts a new account. Uniqueness of (login) and
// (telegram_id) is enforced by the database constraints.
func (r *AccountRepo) Create(ctx context.Context, login, passwordHash string, telegramID int64) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO accounts (login, password_hash, telegram_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	acc := domain.Account{
		Login:        login,
		PasswordHash: passwordHash,
		TelegramID:   telegramID,
	}
	err := r.db.QueryRowContext(ctx, query, login, passwordHash, telegramID).Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	return &acc, nil
}

// ResetPassword replaces the password hash for an existing account
func (r *AccountRepo) ResetPassword(ctx context.Context, login, newPasswordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE accounts SET password_hash = $2 WHERE login = $1`

	res, err := r.db.ExecContext(ctx, query, login, newPasswordHash)
	if err != nil {
		return mapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UpdateEmail attaches an email to an account owned by the given user
func (r *AccountRepo) UpdateEmail(ctx context.Context, login string, telegramID int64, email string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE accounts SET email = $3 WHERE login = $1 AND telegram_id = $2`

	res, err := r.db.ExecContext(ctx, query, login, telegramID, email)
	if err != nil {
		return mapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return r.classifyMiss(ctx, login)
	}

	return nil
}

// ListByTelegramID returns the user's accounts ordered by creation time
func (r *AccountRepo) ListByTelegramID(ctx context.Context, telegramID int64) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, login, password_hash, telegram_id, email, created_at
		FROM accounts
		WHERE telegram_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, telegramID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(&acc.ID, &acc.Login, &acc.PasswordHash, &acc.TelegramID, &acc.Email, &acc.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return accounts, nil
}

// Delete removes an account only if it is bound to the given user
func (r *AccountRepo) Delete(ctx context.Context, login string, telegramID int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `DELETE FROM accounts WHERE login = $1 AND telegram_id = $2`

	res, err := r.db.ExecContext(ctx, query, login, telegramID)
	if err != nil {
		return mapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return r.classifyMiss(ctx, login)
	}

	return nil
}

// AdminDelete removes an account regardless of ownership
func (r *AccountRepo) AdminDelete(ctx context.Context, login string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `DELETE FROM accounts WHERE login = $1`

	res, err := r.db.ExecContext(ctx, query, login)
	if err != nil {
		return mapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// AllTelegramIDs returns the telegram ids of every registered user,
// used for broadcast fan-out
func (r *AccountRepo) AllTelegramIDs(ctx context.Context) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT DISTINCT telegram_id FROM accounts`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return ids, nil
}

// HealthCheck verifies database connectivity
func (r *AccountRepo) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

// classifyMiss distinguishes "no such login" from "login owned by
// someone else" after an ownership-scoped statement touched no rows
func (r *AccountRepo) classifyMiss(ctx context.Context, login string) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE login = $1)`, login).Scan(&exists)
	if err != nil {
		return mapError(err)
	}
	if exists {
		return domain.ErrNotOwner
	}
	return domain.ErrNotFound
}

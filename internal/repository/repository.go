package repository

import (
	"context"

	"realmbot/internal/domain"
)

// AccountRepository defines account data operations. Domain conflicts
// and infrastructure failures are reported via the sentinel errors in
// the domain package.
type AccountRepository interface {
	Create(ctx context.Context, login, passwordHash string, telegramID int64) (*domain.Account, error)
	ResetPassword(ctx context.Context, login, newPasswordHash string) error
	UpdateEmail(ctx context.Context, login string, telegramID int64, email string) error
	ListByTelegramID(ctx context.Context, telegramID int64) ([]domain.Account, error)
	Delete(ctx context.Context, login string, telegramID int64) error
	AdminDelete(ctx context.Context, login string) error
	AllTelegramIDs(ctx context.Context) ([]int64, error)
	HealthCheck(ctx context.Context) error
}

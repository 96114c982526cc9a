package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"realmbot/internal/domain"
	"realmbot/internal/repository"

	"go.uber.org/zap"
)

// AccountService handles account business logic on top of the repository
type AccountService struct {
	repo   repository.AccountRepository
	logger *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repo repository.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

// HashPassword derives the hash the game server expects:
// SHA1 of "LOGIN:PASSWORD" with both parts uppercased.
func HashPassword(login, password string) string {
	sum := sha1.Sum([]byte(strings.ToUpper(login) + ":" + strings.ToUpper(password)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Register creates a new account for the telegram user
func (s *AccountService) Register(ctx context.Context, login, password string, telegramID int64) (*domain.Account, error) {
	acc, err := s.repo.Create(ctx, login, HashPassword(login, password), telegramID)
	if err != nil {
		s.logger.Warn("Account registration failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("login", login),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("login", login),
	)
	return acc, nil
}

// ResetPassword replaces the account password
func (s *AccountService) ResetPassword(ctx context.Context, login, newPassword string) error {
	if err := s.repo.ResetPassword(ctx, login, HashPassword(login, newPassword)); err != nil {
		s.logger.Warn("Password reset failed",
			zap.String("login", login),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("Password reset", zap.String("login", login))
	return nil
}

// AttachEmail binds an email to one of the user's own accounts
func (s *AccountService) AttachEmail(ctx context.Context, login, email string, telegramID int64) error {
	return s.repo.UpdateEmail(ctx, login, telegramID, email)
}

// Accounts returns the user's accounts ordered by creation time
func (s *AccountService) Accounts(ctx context.Context, telegramID int64) ([]domain.Account, error) {
	return s.repo.ListByTelegramID(ctx, telegramID)
}

// Delete removes an account owned by the requesting user
func (s *AccountService) Delete(ctx context.Context, login string, telegramID int64) error {
	if err := s.repo.Delete(ctx, login, telegramID); err != nil {
		return err
	}

	s.logger.Info("Account deleted",
		zap.Int64("telegram_id", telegramID),
		zap.String("login", login),
	)
	return nil
}

// AdminDelete removes any account, bypassing the ownership check.
// Callers must gate this behind the admin identity check.
func (s *AccountService) AdminDelete(ctx context.Context, login string) error {
	if err := s.repo.AdminDelete(ctx, login); err != nil {
		return err
	}

	s.logger.Info("Account deleted by admin", zap.String("login", login))
	return nil
}

// HealthCheck verifies the account database is reachable
func (s *AccountService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

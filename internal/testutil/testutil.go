package testutil

import (
	"time"

	"realmbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestAccount creates a test account
func NewTestAccount(id int64, login string, telegramID int64) *domain.Account {
	return &domain.Account{
		ID:           id,
		Login:        login,
		PasswordHash: "HASH",
		TelegramID:   telegramID,
		CreatedAt:    time.Now(),
	}
}

package service

import (
	"context"

	"realmbot/internal/repository"

	"go.uber.org/zap"
)

// Sender delivers a message to a single telegram user. Implemented by
// the chat transport layer.
type Sender interface {
	Send(telegramID int64, text string) error
}

// BroadcastService fans a message out to every registered user
type BroadcastService struct {
	repo   repository.AccountRepository
	sender Sender
	logger *zap.Logger
}

// NewBroadcastService creates a new broadcast service
func NewBroadcastService(repo repository.AccountRepository, sender Sender, logger *zap.Logger) *BroadcastService {
	return &BroadcastService{repo: repo, sender: sender, logger: logger}
}

// Broadcast sends text to all registered users. Per-recipient failures
// are counted and logged, not fatal; the error is non-nil only when
// the recipient list itself cannot be fetched.
func (s *BroadcastService) Broadcast(ctx context.Context, text string) (sent, failed int, err error) {
	ids, err := s.repo.AllTelegramIDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, id := range ids {
		if err := s.sender.Send(id, text); err != nil {
			s.logger.Warn("Failed to deliver broadcast message",
				zap.Int64("telegram_id", id),
				zap.Error(err),
			)
			failed++
			continue
		}
		sent++
	}

	s.logger.Info("Broadcast finished",
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
	return sent, failed, nil
}

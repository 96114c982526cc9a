package domain

import "time"

// Account represents a registered game account bound to a Telegram user
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
	TelegramID   int64
	Email        string
	CreatedAt    time.Time
}

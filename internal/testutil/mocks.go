package testutil

import (
	"context"

	"realmbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock for repository.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, login, passwordHash string, telegramID int64) (*domain.Account, error) {
	args := m.Called(ctx, login, passwordHash, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ResetPassword(ctx context.Context, login, newPasswordHash string) error {
	args := m.Called(ctx, login, newPasswordHash)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateEmail(ctx context.Context, login string, telegramID int64, email string) error {
	args := m.Called(ctx, login, telegramID, email)
	return args.Error(0)
}

func (m *MockAccountRepository) ListByTelegramID(ctx context.Context, telegramID int64) ([]domain.Account, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, login string, telegramID int64) error {
	args := m.Called(ctx, login, telegramID)
	return args.Error(0)
}

func (m *MockAccountRepository) AdminDelete(ctx context.Context, login string) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *MockAccountRepository) AllTelegramIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAccountRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAccounts is a mock for the engine's user account capability
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Register(ctx context.Context, login, password string, telegramID int64) (*domain.Account, error) {
	args := m.Called(ctx, login, password, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccounts) ResetPassword(ctx context.Context, login, newPassword string) error {
	args := m.Called(ctx, login, newPassword)
	return args.Error(0)
}

func (m *MockAccounts) AttachEmail(ctx context.Context, login, email string, telegramID int64) error {
	args := m.Called(ctx, login, email, telegramID)
	return args.Error(0)
}

func (m *MockAccounts) Accounts(ctx context.Context, telegramID int64) ([]domain.Account, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccounts) Delete(ctx context.Context, login string, telegramID int64) error {
	args := m.Called(ctx, login, telegramID)
	return args.Error(0)
}

// MockAdminAccounts is a mock for the engine's privileged account capability
type MockAdminAccounts struct {
	mock.Mock
}

func (m *MockAdminAccounts) AdminDelete(ctx context.Context, login string) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *MockAdminAccounts) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockBroadcaster is a mock for the admin engine's broadcast capability
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, text string) (int, int, error) {
	args := m.Called(ctx, text)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockReloader is a mock for the admin engine's config reload capability
type MockReloader struct {
	mock.Mock
}

func (m *MockReloader) Reload() error {
	args := m.Called()
	return args.Error(0)
}

// MockLogSource is a mock for the admin engine's log tail capability
type MockLogSource struct {
	mock.Mock
}

func (m *MockLogSource) Tail(lines int) (string, error) {
	args := m.Called(lines)
	return args.String(0), args.Error(1)
}

// MockSender is a mock for the broadcast service's message sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(telegramID int64, text string) error {
	args := m.Called(telegramID, text)
	return args.Error(0)
}

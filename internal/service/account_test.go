package service

import (
	"context"
	"testing"

	"realmbot/internal/domain"
	"realmbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHashPassword(t *testing.T) {
	// SHA1("LOGIN:PASSWORD"), uppercased hex — the scheme the game
	// server authenticates against
	hash := HashPassword("testuser", "password")
	assert.Equal(t, "CFEA2377A910A4728B3AC210EFE18468113A6E46", hash)

	// Case-insensitive on both parts
	assert.Equal(t, hash, HashPassword("TESTUSER", "PASSWORD"))

	// Different inputs produce different hashes
	assert.NotEqual(t, hash, HashPassword("testuser", "other"))
}

func TestAccountService_Register(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)
	expected := testutil.NewTestAccount(1, "validLogin1", 123)

	mockRepo.On("Create", mock.Anything, "validLogin1", HashPassword("validLogin1", "Pass1234"), int64(123)).
		Return(expected, nil)

	svc := NewAccountService(mockRepo, testutil.NewTestLogger())

	acc, err := svc.Register(context.Background(), "validLogin1", "Pass1234", 123)

	assert.NoError(t, err)
	assert.Equal(t, expected, acc)
	mockRepo.AssertExpectations(t)
}

func TestAccountService_RegisterDuplicate(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)

	mockRepo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrDuplicateLogin)

	svc := NewAccountService(mockRepo, testutil.NewTestLogger())

	acc, err := svc.Register(context.Background(), "validLogin1", "Pass1234", 123)

	assert.ErrorIs(t, err, domain.ErrDuplicateLogin)
	assert.Nil(t, acc)
}

func TestAccountService_ResetPassword(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)

	mockRepo.On("ResetPassword", mock.Anything, "validLogin1", HashPassword("validLogin1", "NewPass99")).
		Return(nil)

	svc := NewAccountService(mockRepo, testutil.NewTestLogger())

	assert.NoError(t, svc.ResetPassword(context.Background(), "validLogin1", "NewPass99"))
	mockRepo.AssertExpectations(t)
}

func TestAccountService_Delete(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)

	mockRepo.On("Delete", mock.Anything, "validLogin1", int64(123)).Return(domain.ErrNotOwner)

	svc := NewAccountService(mockRepo, testutil.NewTestLogger())

	err := svc.Delete(context.Background(), "validLogin1", 123)

	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

package service

import (
	"context"
	"errors"
	"testing"

	"realmbot/internal/domain"
	"realmbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBroadcastService_Broadcast(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)
	mockSender := new(testutil.MockSender)

	mockRepo.On("AllTelegramIDs", mock.Anything).Return([]int64{111, 222, 333}, nil)
	mockSender.On("Send", int64(111), "привет").Return(nil)
	mockSender.On("Send", int64(222), "привет").Return(errors.New("blocked by user"))
	mockSender.On("Send", int64(333), "привет").Return(nil)

	svc := NewBroadcastService(mockRepo, mockSender, testutil.NewTestLogger())

	sent, failed, err := svc.Broadcast(context.Background(), "привет")

	// Per-recipient failures are collected, not fatal
	assert.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)
	mockSender.AssertExpectations(t)
}

func TestBroadcastService_RecipientListFailure(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)
	mockSender := new(testutil.MockSender)

	mockRepo.On("AllTelegramIDs", mock.Anything).Return(nil, domain.ErrStoreUnavailable)

	svc := NewBroadcastService(mockRepo, mockSender, testutil.NewTestLogger())

	sent, failed, err := svc.Broadcast(context.Background(), "привет")

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Zero(t, sent)
	assert.Zero(t, failed)
	mockSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

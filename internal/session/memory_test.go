package session

import (
	"context"
	"encoding/json"
	"testing"

	"realmbot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_GetDefault(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Get(context.Background(), 123)

	assert.NoError(t, err)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.False(t, sess.Active())
}

func TestMemoryStore_SetGetClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	saved := domain.Session{
		State: domain.StateAwaitingPassword,
		Login: "validLogin1",
	}

	assert.NoError(t, store.Set(ctx, 123, saved))

	got, err := store.Get(ctx, 123)
	assert.NoError(t, err)
	assert.Equal(t, saved, got)

	// Other users are unaffected
	other, err := store.Get(ctx, 456)
	assert.NoError(t, err)
	assert.Equal(t, domain.StateIdle, other.State)

	assert.NoError(t, store.Clear(ctx, 123))

	got, err = store.Get(ctx, 123)
	assert.NoError(t, err)
	assert.Equal(t, domain.StateIdle, got.State)
}

// A session must resume at the exact same state and field values after
// being encoded and decoded, which is what a restart with the Redis
// store amounts to.
func TestSessionRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		session domain.Session
	}{
		{
			name:    "idle",
			session: domain.IdleSession(),
		},
		{
			name: "registration mid-flow",
			session: domain.Session{
				State:    domain.StateAwaitingPasswordConfirm,
				Login:    "validLogin1",
				Password: "Pass1234",
			},
		},
		{
			name: "broadcast pending confirmation",
			session: domain.Session{
				State:         domain.StateAwaitingBroadcastConfirm,
				BroadcastText: "Сервер перезапустится в 22:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := json.Marshal(tt.session)
			assert.NoError(t, err)

			var restored domain.Session
			assert.NoError(t, json.Unmarshal(payload, &restored))
			assert.Equal(t, tt.session, restored)
		})
	}
}

package dispatcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"realmbot/internal/config"
	"realmbot/internal/domain"
	"realmbot/internal/engine"
	"realmbot/internal/session"
	"realmbot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

const (
	testUserID  int64 = 123
	testAdminID int64 = 999
)

// fakeAccounts counts registrations with an artificial delay so that
// two overlapping engine steps would both see the stale session if the
// dispatcher failed to serialize them.
type fakeAccounts struct {
	mu         sync.Mutex
	registered int
	delay      time.Duration
}

func (a *fakeAccounts) Register(_ context.Context, login, _ string, telegramID int64) (*domain.Account, error) {
	time.Sleep(a.delay)
	a.mu.Lock()
	a.registered++
	a.mu.Unlock()
	return &domain.Account{ID: 1, Login: login, TelegramID: telegramID, CreatedAt: time.Now()}, nil
}

func (a *fakeAccounts) ResetPassword(context.Context, string, string) error { return nil }

func (a *fakeAccounts) AttachEmail(context.Context, string, string, int64) error { return nil }

func (a *fakeAccounts) Accounts(context.Context, int64) ([]domain.Account, error) {
	return nil, nil
}

func (a *fakeAccounts) Delete(context.Context, string, int64) error { return nil }

func (a *fakeAccounts) registrations() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registered
}

type failingStore struct{}

func (failingStore) Get(context.Context, int64) (domain.Session, error) {
	return domain.IdleSession(), errors.New("redis gone")
}

func (failingStore) Set(context.Context, int64, domain.Session) error { return errors.New("redis gone") }

func (failingStore) Clear(context.Context, int64) error { return errors.New("redis gone") }

func newTestDispatcher(t *testing.T, store session.Store, accounts engine.Accounts) *Dispatcher {
	t.Helper()

	cfg, err := config.NewManager(filepath.Join(t.TempDir(), "missing.json"), testAdminID)
	assert.NoError(t, err)

	logger := testutil.NewTestLogger()
	users := engine.New(accounts, logger)
	admin := engine.NewAdmin(
		new(testutil.MockAdminAccounts),
		new(testutil.MockBroadcaster),
		new(testutil.MockReloader),
		new(testutil.MockLogSource),
		logger,
	)

	return New(store, users, admin, cfg, logger)
}

func TestDispatcher_RegistrationFlowPersists(t *testing.T) {
	store := session.NewMemoryStore()
	accounts := &fakeAccounts{}
	d := newTestDispatcher(t, store, accounts)
	ctx := context.Background()

	d.Dispatch(ctx, testUserID, domain.NewCommand("/register"))
	d.Dispatch(ctx, testUserID, domain.NewText("validLogin1"))

	// The collected state is in the store, so a second dispatcher over
	// the same store (a restarted process) resumes mid-flow
	restarted := newTestDispatcher(t, store, accounts)
	restarted.Dispatch(ctx, testUserID, domain.NewText("Pass1234"))
	restarted.Dispatch(ctx, testUserID, domain.NewText("Pass1234"))

	assert.Equal(t, 1, accounts.registrations())

	sess, err := store.Get(ctx, testUserID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StateIdle, sess.State)
}

func TestDispatcher_SerializesEventsPerUser(t *testing.T) {
	store := session.NewMemoryStore()
	accounts := &fakeAccounts{delay: 50 * time.Millisecond}
	d := newTestDispatcher(t, store, accounts)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, testUserID, domain.Session{
		State:    domain.StateAwaitingPasswordConfirm,
		Login:    "validLogin1",
		Password: "Pass1234",
	}))

	// Two near-simultaneous confirms: only the first may win, the
	// second must observe the idle session left behind
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(ctx, testUserID, domain.NewText("Pass1234"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accounts.registrations())
}

func TestDispatcher_DifferentUsersDoNotBlock(t *testing.T) {
	store := session.NewMemoryStore()
	accounts := &fakeAccounts{}
	d := newTestDispatcher(t, store, accounts)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []int64{1, 2, 3, 4, 5} {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(ctx, id, domain.NewCommand("/register"))
			d.Dispatch(ctx, id, domain.NewText("validLogin1"))
		}()
	}
	wg.Wait()

	for _, id := range []int64{1, 2, 3, 4, 5} {
		sess, err := store.Get(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, domain.StateAwaitingPassword, sess.State)
	}
}

func TestDispatcher_AdminCommandRouting(t *testing.T) {
	store := session.NewMemoryStore()
	d := newTestDispatcher(t, store, &fakeAccounts{})
	ctx := context.Background()

	// Non-admin gets the generic refusal and no session
	reply := d.Dispatch(ctx, testUserID, domain.NewCommand("/broadcast"))
	assert.Equal(t, "⛔ Нет доступа.", reply.Text)

	sess, err := store.Get(ctx, testUserID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StateIdle, sess.State)

	// Admin starts the broadcast flow
	d.Dispatch(ctx, testAdminID, domain.NewCommand("/broadcast"))

	sess, err = store.Get(ctx, testAdminID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingBroadcastText, sess.State)
}

func TestDispatcher_CancelClearsSession(t *testing.T) {
	store := session.NewMemoryStore()
	d := newTestDispatcher(t, store, &fakeAccounts{})
	ctx := context.Background()

	d.Dispatch(ctx, testUserID, domain.NewCommand("/register"))
	reply := d.Dispatch(ctx, testUserID, domain.NewCommand("/cancel"))

	assert.Equal(t, "❌ Действие отменено.", reply.Text)

	sess, err := store.Get(ctx, testUserID)
	assert.NoError(t, err)
	assert.False(t, sess.Active())
}

func TestDispatcher_StoreReadFailure(t *testing.T) {
	d := newTestDispatcher(t, failingStore{}, &fakeAccounts{})

	reply := d.Dispatch(context.Background(), testUserID, domain.NewCommand("/register"))

	assert.Equal(t, msgRetry, reply.Text)
}

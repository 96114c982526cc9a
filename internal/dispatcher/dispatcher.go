package dispatcher

import (
	"context"
	"sync"

	"realmbot/internal/config"
	"realmbot/internal/domain"
	"realmbot/internal/engine"
	"realmbot/internal/session"

	"go.uber.org/zap"
)

// Sent when the session store itself cannot be read; the engine never
// ran, so there is nothing more specific to say.
const msgRetry = "Произошла ошибка. Попробуйте позже."

// Dispatcher routes one inbound event to the right engine and
// serializes the read-modify-write of session state per user. Two
// events for the same user never race on the same stale session;
// different users proceed in parallel.
type Dispatcher struct {
	store  session.Store
	users  *engine.Engine
	admin  *engine.AdminEngine
	cfg    *config.Manager
	logger *zap.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// New creates a dispatcher
func New(store session.Store, users *engine.Engine, admin *engine.AdminEngine, cfg *config.Manager, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		users:  users,
		admin:  admin,
		cfg:    cfg,
		logger: logger,
		locks:  make(map[int64]*sync.Mutex),
	}
}

// lockFor returns the per-user mutex, creating it on first use
func (d *Dispatcher) lockFor(userID int64) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	lock, exists := d.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		d.locks[userID] = lock
	}
	return lock
}

// Dispatch processes one inbound event for the user and returns the
// reply to render. The configuration snapshot is taken once per event.
func (d *Dispatcher) Dispatch(ctx context.Context, userID int64, ev domain.Event) domain.Reply {
	lock := d.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	snap := d.cfg.Snapshot()

	sess, err := d.store.Get(ctx, userID)
	if err != nil {
		d.logger.Error("Failed to load session",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return domain.TextReply(msgRetry)
	}

	var next domain.Session
	var reply domain.Reply
	if engine.IsAdminEvent(sess, ev) {
		next, reply = d.admin.Step(ctx, snap, userID, sess, ev)
	} else {
		next, reply = d.users.Step(ctx, snap, userID, sess, ev)
	}

	if next.Active() {
		err = d.store.Set(ctx, userID, next)
	} else {
		err = d.store.Clear(ctx, userID)
	}
	if err != nil {
		// The engine's side effects already happened; losing the state
		// write sends the user back a step, it must not fail the reply.
		d.logger.Error("Failed to persist session",
			zap.Int64("user_id", userID),
			zap.String("state", string(next.State)),
			zap.Error(err),
		)
	}

	return reply
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"realmbot/internal/config"
	"realmbot/internal/domain"
	"realmbot/internal/validator"

	"go.uber.org/zap"
)

// AdminAccounts is the privileged account capability: delete bypasses
// the ownership check, health check probes the database.
type AdminAccounts interface {
	AdminDelete(ctx context.Context, login string) error
	HealthCheck(ctx context.Context) error
}

// Broadcaster fans a message out to all registered users
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (sent, failed int, err error)
}

// Reloader re-reads the runtime configuration source
type Reloader interface {
	Reload() error
}

// LogSource serves the tail of the bot's log for the export command
type LogSource interface {
	Tail(lines int) (string, error)
}

// AdminEngine drives the administrator dialogue. Every step checks the
// sender against the configured admin identity before doing anything
// else; a mismatch gets a generic refusal with no further detail.
type AdminEngine struct {
	accounts    AdminAccounts
	broadcaster Broadcaster
	reloader    Reloader
	logs        LogSource
	logger      *zap.Logger
}

// NewAdmin creates an admin dialogue engine
func NewAdmin(accounts AdminAccounts, broadcaster Broadcaster, reloader Reloader, logs LogSource, logger *zap.Logger) *AdminEngine {
	return &AdminEngine{
		accounts:    accounts,
		broadcaster: broadcaster,
		reloader:    reloader,
		logs:        logs,
		logger:      logger,
	}
}

// Admin choice keys
const (
	choiceAdminBroadcast        = "admin_broadcast"
	choiceAdminCheckDB          = "admin_check_db"
	choiceAdminDelete           = "admin_delete"
	choiceAdminReload           = "admin_reload"
	choiceAdminLogs             = "admin_logs"
	choiceAdminConfirmBroadcast = "admin_confirm_broadcast"
	choiceAdminConfirmDelete    = "admin_confirm_delete"
)

// How much of the log the export command shows
const logTailLines = 40

var adminStates = map[domain.State]bool{
	domain.StateAwaitingBroadcastText:      true,
	domain.StateAwaitingBroadcastConfirm:   true,
	domain.StateAwaitingAdminDeleteLogin:   true,
	domain.StateAwaitingAdminDeleteConfirm: true,
}

var adminCommands = map[string]bool{
	"/admin":     true,
	"/broadcast": true,
	"/checkdb":   true,
	"/deleteacc": true,
	"/reload":    true,
	"/logs":      true,
}

// IsAdminEvent reports whether the event belongs to the admin workflow:
// either the session already sits in an admin state, or the event is an
// admin command or admin panel choice.
func IsAdminEvent(sess domain.Session, ev domain.Event) bool {
	if adminStates[sess.State] {
		return true
	}
	switch ev.Kind {
	case domain.EventCommand:
		return adminCommands[ev.Command]
	case domain.EventChoice:
		return strings.HasPrefix(ev.Choice, "admin_")
	}
	return false
}

// Step advances the admin dialogue by one event
func (e *AdminEngine) Step(ctx context.Context, cfg config.Snapshot, userID int64, sess domain.Session, ev domain.Event) (domain.Session, domain.Reply) {
	if userID != cfg.AdminID {
		e.logger.Warn("Admin operation refused",
			zap.Int64("user_id", userID),
			zap.Error(domain.ErrNotAuthorized),
		)
		return sess, domain.TextReply(msgNoAccess)
	}

	switch ev.Kind {
	case domain.EventCommand:
		return e.stepCommand(ctx, cfg, sess, ev.Command)
	case domain.EventText:
		return e.stepText(cfg, sess, strings.TrimSpace(ev.Text))
	case domain.EventChoice:
		return e.stepChoice(ctx, cfg, userID, sess, ev.Choice)
	}
	return sess, domain.TextReply(msgTryLater)
}

func (e *AdminEngine) stepCommand(ctx context.Context, cfg config.Snapshot, sess domain.Session, command string) (domain.Session, domain.Reply) {
	if command == "/cancel" {
		if !sess.Active() {
			return sess, domain.TextReply(msgNothingToCancel)
		}
		return domain.IdleSession(), domain.TextReply(msgCancelled)
	}

	if sess.Active() {
		sess = domain.IdleSession()
	}

	switch command {
	case "/admin":
		return sess, e.panel(cfg)
	case "/broadcast":
		return e.startBroadcast(cfg)
	case "/checkdb":
		return sess, e.checkDB(ctx, cfg)
	case "/deleteacc":
		return e.startDelete(cfg)
	case "/reload":
		return sess, e.reloadConfig(cfg)
	case "/logs":
		return sess, e.exportLogs(cfg)
	}

	return sess, domain.TextReply(msgUnknownCommand)
}

func (e *AdminEngine) stepText(cfg config.Snapshot, sess domain.Session, text string) (domain.Session, domain.Reply) {
	switch sess.State {
	case domain.StateAwaitingBroadcastText:
		if text == "" {
			return sess, domain.TextReply(msgPromptBroadcast)
		}
		sess.BroadcastText = text
		sess.State = domain.StateAwaitingBroadcastConfirm
		return sess, domain.Reply{
			Text: fmt.Sprintf(msgPromptBroadcastSure, text),
			Choices: []domain.Choice{
				{Key: choiceAdminConfirmBroadcast, Label: lblConfirm},
				{Key: choiceCancel, Label: lblCancel},
			},
		}

	case domain.StateAwaitingAdminDeleteLogin:
		if res := validator.Login(text); !res.OK {
			return sess, domain.TextReply(res.Reason)
		}
		sess.Login = text
		sess.State = domain.StateAwaitingAdminDeleteConfirm
		return sess, domain.Reply{
			Text: fmt.Sprintf(msgPromptAdminDelSure, text),
			Choices: []domain.Choice{
				{Key: choiceAdminConfirmDelete, Label: lblConfirm},
				{Key: choiceCancel, Label: lblCancel},
			},
		}
	}

	return sess, domain.TextReply(msgIdleHint)
}

func (e *AdminEngine) stepChoice(ctx context.Context, cfg config.Snapshot, userID int64, sess domain.Session, choice string) (domain.Session, domain.Reply) {
	if choice == choiceCancel {
		if !sess.Active() {
			return sess, domain.TextReply(msgNothingToCancel)
		}
		return domain.IdleSession(), domain.TextReply(msgCancelled)
	}

	switch sess.State {
	case domain.StateAwaitingBroadcastConfirm:
		if choice == choiceAdminConfirmBroadcast {
			return e.finishBroadcast(ctx, userID, sess)
		}

	case domain.StateAwaitingAdminDeleteConfirm:
		if choice == choiceAdminConfirmDelete {
			return e.finishDelete(ctx, sess)
		}
	}

	if !sess.Active() {
		switch choice {
		case choiceAdminBroadcast:
			return e.startBroadcast(cfg)
		case choiceAdminCheckDB:
			return sess, e.checkDB(ctx, cfg)
		case choiceAdminDelete:
			return e.startDelete(cfg)
		case choiceAdminReload:
			return sess, e.reloadConfig(cfg)
		case choiceAdminLogs:
			return sess, e.exportLogs(cfg)
		}
	}

	return sess, domain.TextReply(msgIdleHint)
}

func (e *AdminEngine) panel(cfg config.Snapshot) domain.Reply {
	if !cfg.Features.AdminPanel {
		return domain.TextReply(msgFeatureDisabled)
	}

	reply := domain.Reply{Text: msgAdminPanel}
	if cfg.Features.AdminBroadcast {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceAdminBroadcast, Label: "📢 Рассылка"})
	}
	if cfg.Features.AdminCheckDB {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceAdminCheckDB, Label: "🗄 Проверка БД"})
	}
	if cfg.Features.AdminDeleteAccount {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceAdminDelete, Label: "🗑 Удалить аккаунт"})
	}
	if cfg.Features.AdminReloadConfig {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceAdminReload, Label: "♻️ Перезагрузить конфиг"})
	}
	if cfg.Features.AdminExportLogs {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceAdminLogs, Label: "📄 Журнал"})
	}
	return reply
}

func (e *AdminEngine) startBroadcast(cfg config.Snapshot) (domain.Session, domain.Reply) {
	if !cfg.Features.AdminBroadcast {
		return domain.IdleSession(), domain.TextReply(msgFeatureDisabled)
	}
	return domain.Session{State: domain.StateAwaitingBroadcastText}, cancelable(msgPromptBroadcast)
}

func (e *AdminEngine) finishBroadcast(ctx context.Context, userID int64, sess domain.Session) (domain.Session, domain.Reply) {
	sent, failed, err := e.broadcaster.Broadcast(ctx, sess.BroadcastText)
	if err != nil {
		e.logger.Error("Broadcast failed", zap.Error(err))
		return sess, cancelable(msgTryLater)
	}

	e.logger.Info("Broadcast flow completed",
		zap.Int64("user_id", userID),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
	return domain.IdleSession(), domain.TextReply(fmt.Sprintf(msgBroadcastReport, sent, failed))
}

func (e *AdminEngine) checkDB(ctx context.Context, cfg config.Snapshot) domain.Reply {
	if !cfg.Features.AdminCheckDB {
		return domain.TextReply(msgFeatureDisabled)
	}

	if err := e.accounts.HealthCheck(ctx); err != nil {
		e.logger.Error("Database health check failed", zap.Error(err))
		return domain.TextReply(msgDBFail)
	}
	return domain.TextReply(msgDBOK)
}

func (e *AdminEngine) startDelete(cfg config.Snapshot) (domain.Session, domain.Reply) {
	if !cfg.Features.AdminDeleteAccount {
		return domain.IdleSession(), domain.TextReply(msgFeatureDisabled)
	}
	return domain.Session{State: domain.StateAwaitingAdminDeleteLogin}, cancelable(msgPromptAdminDelete)
}

func (e *AdminEngine) finishDelete(ctx context.Context, sess domain.Session) (domain.Session, domain.Reply) {
	err := e.accounts.AdminDelete(ctx, sess.Login)
	switch {
	case err == nil:
		return domain.IdleSession(), domain.TextReply(fmt.Sprintf(msgAdminDeleted, sess.Login))
	case errors.Is(err, domain.ErrNotFound):
		return domain.IdleSession(), domain.TextReply(msgAdminDeleteNotFound)
	default:
		return sess, cancelable(msgTryLater)
	}
}

func (e *AdminEngine) exportLogs(cfg config.Snapshot) domain.Reply {
	if !cfg.Features.AdminExportLogs {
		return domain.TextReply(msgFeatureDisabled)
	}

	tail, err := e.logs.Tail(logTailLines)
	if err != nil {
		e.logger.Error("Log export failed", zap.Error(err))
		return domain.TextReply(msgLogsUnavailable)
	}
	return domain.TextReply(msgLogsHeader + tail)
}

func (e *AdminEngine) reloadConfig(cfg config.Snapshot) domain.Reply {
	if !cfg.Features.AdminReloadConfig {
		return domain.TextReply(msgFeatureDisabled)
	}

	if err := e.reloader.Reload(); err != nil {
		e.logger.Error("Config reload failed", zap.Error(err))
		return domain.TextReply(msgConfigReloadFailed)
	}

	e.logger.Info("Config reloaded by admin")
	return domain.TextReply(msgConfigReloaded)
}

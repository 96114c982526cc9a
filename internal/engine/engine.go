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

// Accounts is the account capability the user dialogue needs. The
// engine performs no other I/O, which keeps every transition testable
// without a transport or database.
type Accounts interface {
	Register(ctx context.Context, login, password string, telegramID int64) (*domain.Account, error)
	ResetPassword(ctx context.Context, login, newPassword string) error
	AttachEmail(ctx context.Context, login, email string, telegramID int64) error
	Accounts(ctx context.Context, telegramID int64) ([]domain.Account, error)
	Delete(ctx context.Context, login string, telegramID int64) error
}

// Engine is the dialogue state machine for regular users. One call to
// Step consumes one inbound event and yields the next session plus the
// outbound reply.
type Engine struct {
	accounts Accounts
	logger   *zap.Logger
}

// New creates a user dialogue engine
func New(accounts Accounts, logger *zap.Logger) *Engine {
	return &Engine{accounts: accounts, logger: logger}
}

// Choice keys understood by the user engine
const (
	choiceCancel        = "cancel"
	choiceMenuRegister  = "menu_register"
	choiceMenuReset     = "menu_reset"
	choiceMenuAccounts  = "menu_accounts"
	choiceMenuShop      = "menu_shop"
	choiceConfirmDelete = "confirm_delete"
	choiceDeletePrefix  = "del:"
	choiceShopPrefix    = "shop:"
)

// Step advances the user's dialogue by one event
func (e *Engine) Step(ctx context.Context, cfg config.Snapshot, userID int64, sess domain.Session, ev domain.Event) (domain.Session, domain.Reply) {
	switch ev.Kind {
	case domain.EventCommand:
		return e.stepCommand(ctx, cfg, userID, sess, ev.Command)
	case domain.EventText:
		return e.stepText(ctx, userID, sess, strings.TrimSpace(ev.Text))
	case domain.EventChoice:
		return e.stepChoice(ctx, cfg, userID, sess, ev.Choice)
	}
	return sess, domain.TextReply(msgTryLater)
}

func (e *Engine) stepCommand(ctx context.Context, cfg config.Snapshot, userID int64, sess domain.Session, command string) (domain.Session, domain.Reply) {
	if command == "/cancel" {
		return e.cancel(userID, sess)
	}

	// A command during an active flow abandons that flow rather than
	// forking a second one for the same user.
	if sess.Active() {
		e.logger.Info("Flow abandoned by command",
			zap.Int64("user_id", userID),
			zap.String("state", string(sess.State)),
			zap.String("command", command),
		)
		sess = domain.IdleSession()
	}

	switch command {
	case "/start":
		return sess, e.mainMenu(cfg)
	case "/register":
		return e.startRegistration(cfg, userID)
	case "/reset":
		return e.startPasswordReset(cfg)
	case "/email":
		return e.startEmailAttach(cfg)
	case "/accounts":
		return sess, e.listAccounts(ctx, cfg, userID)
	case "/delete":
		return e.startDelete(ctx, cfg, userID)
	case "/shop":
		return sess, e.shopMenu(cfg)
	case "/version":
		return sess, domain.TextReply(fmt.Sprintf(msgVersion, config.BotVersion))
	}

	return sess, domain.TextReply(msgUnknownCommand)
}

func (e *Engine) stepText(ctx context.Context, userID int64, sess domain.Session, text string) (domain.Session, domain.Reply) {
	switch sess.State {
	case domain.StateAwaitingLogin:
		if res := validator.Login(text); !res.OK {
			return sess, domain.TextReply(res.Reason)
		}
		sess.Login = text
		sess.State = domain.StateAwaitingPassword
		return sess, cancelable(msgPromptPassword)

	case domain.StateAwaitingPassword:
		if res := validator.Password(text); !res.OK {
			return sess, domain.TextReply(res.Reason)
		}
		sess.Password = text
		sess.State = domain.StateAwaitingPasswordConfirm
		return sess, cancelable(msgPromptConfirm)

	case domain.StateAwaitingPasswordConfirm:
		return e.finishRegistration(ctx, userID, sess, text)

	case domain.StateAwaitingResetLogin:
		if res := validator.Login(text); !res.OK {
			return sess, domain.TextReply(res.Reason)
		}
		sess.Login = text
		sess.State = domain.StateAwaitingNewPassword
		return sess, cancelable(msgPromptNewPassword)

	case domain.StateAwaitingNewPassword:
		if res := validator.Password(text); !res.OK {
			return sess, domain.TextReply(res.Reason)
		}
		sess.Password = text
		sess.State = domain.StateAwaitingNewPasswordConfirm
		return sess, cancelable(msgPromptNewPassConfirm)

	case domain.StateAwaitingNewPasswordConfirm:
		return e.finishPasswordReset(ctx, userID, sess, text)

	case domain.StateAwaitingEmailLogin:
		if res := validator.Login(text); !res.OK {
			return sess, domain.TextReply(res.Reason)
		}
		sess.Login = text
		sess.State = domain.StateAwaitingEmail
		return sess, cancelable(msgPromptEmail)

	case domain.StateAwaitingEmail:
		return e.finishEmailAttach(ctx, userID, sess, text)

	case domain.StateAwaitingDeleteLogin:
		if res := validator.Login(text); !res.OK {
			return sess, domain.TextReply(res.Reason)
		}
		return e.confirmDelete(sess, text)
	}

	return sess, domain.TextReply(msgIdleHint)
}

func (e *Engine) stepChoice(ctx context.Context, cfg config.Snapshot, userID int64, sess domain.Session, choice string) (domain.Session, domain.Reply) {
	if choice == choiceCancel {
		return e.cancel(userID, sess)
	}

	switch sess.State {
	case domain.StateAwaitingDeleteLogin:
		if login, ok := strings.CutPrefix(choice, choiceDeletePrefix); ok {
			return e.confirmDelete(sess, login)
		}

	case domain.StateAwaitingDeleteConfirm:
		if choice == choiceConfirmDelete {
			return e.finishDelete(ctx, userID, sess)
		}
	}

	// Menu and shop choices are only meaningful outside an active flow
	if !sess.Active() {
		switch choice {
		case choiceMenuRegister:
			return e.startRegistration(cfg, userID)
		case choiceMenuReset:
			return e.startPasswordReset(cfg)
		case choiceMenuAccounts:
			return sess, e.listAccounts(ctx, cfg, userID)
		case choiceMenuShop:
			return sess, e.shopMenu(cfg)
		}
		if key, ok := strings.CutPrefix(choice, choiceShopPrefix); ok {
			return sess, e.shopPurchase(cfg, key)
		}
	}

	return sess, domain.TextReply(msgIdleHint)
}

func (e *Engine) cancel(userID int64, sess domain.Session) (domain.Session, domain.Reply) {
	if !sess.Active() {
		return sess, domain.TextReply(msgNothingToCancel)
	}

	e.logger.Info("Flow cancelled",
		zap.Int64("user_id", userID),
		zap.String("state", string(sess.State)),
	)
	return domain.IdleSession(), domain.TextReply(msgCancelled)
}

func (e *Engine) mainMenu(cfg config.Snapshot) domain.Reply {
	reply := domain.Reply{Text: msgStart}
	if cfg.Features.Registration {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceMenuRegister, Label: "📝 Регистрация"})
	}
	if cfg.Features.PasswordReset {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceMenuReset, Label: "🔄 Сброс пароля"})
	}
	if cfg.Features.AccountManagement {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceMenuAccounts, Label: "📋 Мои аккаунты"})
	}
	if cfg.Features.CurrencyShop {
		reply.Choices = append(reply.Choices, domain.Choice{Key: choiceMenuShop, Label: "💰 Магазин монет"})
	}
	return reply
}

func (e *Engine) startRegistration(cfg config.Snapshot, userID int64) (domain.Session, domain.Reply) {
	if !cfg.Features.Registration {
		return domain.IdleSession(), domain.TextReply(msgFeatureDisabled)
	}

	e.logger.Info("Registration flow started", zap.Int64("user_id", userID))
	return domain.Session{State: domain.StateAwaitingLogin}, cancelable(msgPromptLogin)
}

func (e *Engine) finishRegistration(ctx context.Context, userID int64, sess domain.Session, confirm string) (domain.Session, domain.Reply) {
	if confirm != sess.Password {
		// Keep the validated login, re-collect the password
		sess.Password = ""
		sess.State = domain.StateAwaitingPassword
		return sess, cancelable(msgPasswordMismatch)
	}

	acc, err := e.accounts.Register(ctx, sess.Login, sess.Password, userID)
	switch {
	case err == nil:
		e.logger.Info("Registration flow completed",
			zap.Int64("user_id", userID),
			zap.String("login", acc.Login),
		)
		return domain.IdleSession(), domain.TextReply(fmt.Sprintf(msgRegistered, acc.Login))

	case errors.Is(err, domain.ErrDuplicateLogin):
		// Password fields are discarded along with the rejected login
		return domain.Session{State: domain.StateAwaitingLogin}, cancelable(msgLoginTaken)

	case errors.Is(err, domain.ErrDuplicateTelegramUser):
		// One account per telegram user is a hard rule: abort the flow
		e.logger.Info("Registration flow aborted, user already has an account",
			zap.Int64("user_id", userID),
		)
		return domain.IdleSession(), domain.TextReply(msgAlreadyRegistered)

	default:
		return sess, cancelable(msgTryLater)
	}
}

func (e *Engine) startPasswordReset(cfg config.Snapshot) (domain.Session, domain.Reply) {
	if !cfg.Features.PasswordReset {
		return domain.IdleSession(), domain.TextReply(msgFeatureDisabled)
	}
	return domain.Session{State: domain.StateAwaitingResetLogin}, cancelable(msgPromptResetLogin)
}

func (e *Engine) finishPasswordReset(ctx context.Context, userID int64, sess domain.Session, confirm string) (domain.Session, domain.Reply) {
	if confirm != sess.Password {
		sess.Password = ""
		sess.State = domain.StateAwaitingNewPassword
		return sess, cancelable(msgPasswordMismatch)
	}

	err := e.accounts.ResetPassword(ctx, sess.Login, sess.Password)
	switch {
	case err == nil:
		e.logger.Info("Password reset flow completed",
			zap.Int64("user_id", userID),
			zap.String("login", sess.Login),
		)
		return domain.IdleSession(), domain.TextReply(msgPasswordResetDone)

	case errors.Is(err, domain.ErrNotFound):
		return domain.IdleSession(), domain.TextReply(msgPasswordResetNotFound)

	default:
		return sess, cancelable(msgTryLater)
	}
}

func (e *Engine) startEmailAttach(cfg config.Snapshot) (domain.Session, domain.Reply) {
	if !cfg.Features.AccountManagement {
		return domain.IdleSession(), domain.TextReply(msgFeatureDisabled)
	}
	return domain.Session{State: domain.StateAwaitingEmailLogin}, cancelable(msgPromptEmailLogin)
}

func (e *Engine) finishEmailAttach(ctx context.Context, userID int64, sess domain.Session, text string) (domain.Session, domain.Reply) {
	if res := validator.Email(text); !res.OK {
		return sess, domain.TextReply(res.Reason)
	}

	err := e.accounts.AttachEmail(ctx, sess.Login, text, userID)
	switch {
	case err == nil:
		return domain.IdleSession(), domain.TextReply(fmt.Sprintf(msgEmailAttached, sess.Login))
	case errors.Is(err, domain.ErrNotOwner):
		return domain.IdleSession(), domain.TextReply(msgEmailNotOwner)
	case errors.Is(err, domain.ErrNotFound):
		return domain.IdleSession(), domain.TextReply(msgEmailNotFound)
	default:
		return sess, cancelable(msgTryLater)
	}
}

func (e *Engine) listAccounts(ctx context.Context, cfg config.Snapshot, userID int64) domain.Reply {
	if !cfg.Features.AccountManagement {
		return domain.TextReply(msgFeatureDisabled)
	}

	accounts, err := e.accounts.Accounts(ctx, userID)
	if err != nil {
		e.logger.Error("Failed to list accounts", zap.Int64("user_id", userID), zap.Error(err))
		return domain.TextReply(msgTryLater)
	}
	if len(accounts) == 0 {
		return domain.TextReply(msgNoAccounts)
	}

	var b strings.Builder
	b.WriteString(msgAccountsHeader)
	for _, acc := range accounts {
		b.WriteString("\n• ")
		b.WriteString(acc.Login)
		if acc.Email != "" {
			b.WriteString(" (")
			b.WriteString(acc.Email)
			b.WriteString(")")
		}
		b.WriteString(" — создан ")
		b.WriteString(acc.CreatedAt.Format("02.01.2006"))
	}
	return domain.TextReply(b.String())
}

func (e *Engine) startDelete(ctx context.Context, cfg config.Snapshot, userID int64) (domain.Session, domain.Reply) {
	if !cfg.Features.AccountManagement {
		return domain.IdleSession(), domain.TextReply(msgFeatureDisabled)
	}

	accounts, err := e.accounts.Accounts(ctx, userID)
	if err != nil {
		e.logger.Error("Failed to list accounts", zap.Int64("user_id", userID), zap.Error(err))
		return domain.IdleSession(), domain.TextReply(msgTryLater)
	}
	if len(accounts) == 0 {
		return domain.IdleSession(), domain.TextReply(msgNoAccounts)
	}

	reply := domain.Reply{Text: msgPromptDeletePick}
	for _, acc := range accounts {
		reply.Choices = append(reply.Choices, domain.Choice{
			Key:   choiceDeletePrefix + acc.Login,
			Label: acc.Login,
		})
	}
	reply.Choices = append(reply.Choices, domain.Choice{Key: choiceCancel, Label: lblCancel})

	return domain.Session{State: domain.StateAwaitingDeleteLogin}, reply
}

func (e *Engine) confirmDelete(sess domain.Session, login string) (domain.Session, domain.Reply) {
	sess.Login = login
	sess.State = domain.StateAwaitingDeleteConfirm
	return sess, domain.Reply{
		Text: fmt.Sprintf(msgPromptDeleteSure, login),
		Choices: []domain.Choice{
			{Key: choiceConfirmDelete, Label: lblConfirm},
			{Key: choiceCancel, Label: lblCancel},
		},
	}
}

func (e *Engine) finishDelete(ctx context.Context, userID int64, sess domain.Session) (domain.Session, domain.Reply) {
	err := e.accounts.Delete(ctx, sess.Login, userID)
	switch {
	case err == nil:
		return domain.IdleSession(), domain.TextReply(fmt.Sprintf(msgAccountDeleted, sess.Login))
	case errors.Is(err, domain.ErrNotOwner):
		return domain.IdleSession(), domain.TextReply(msgDeleteNotOwner)
	case errors.Is(err, domain.ErrNotFound):
		return domain.IdleSession(), domain.TextReply(msgDeleteNotFound)
	default:
		return sess, cancelable(msgTryLater)
	}
}

func (e *Engine) shopMenu(cfg config.Snapshot) domain.Reply {
	if !cfg.Features.CurrencyShop {
		return domain.TextReply(msgFeatureDisabled)
	}
	if len(cfg.ShopPackages) == 0 {
		return domain.TextReply(msgShopNoOffers)
	}

	reply := domain.Reply{Text: msgShopMenu}
	for _, pkg := range cfg.ShopPackages {
		reply.Choices = append(reply.Choices, domain.Choice{
			Key:   choiceShopPrefix + pkg.Key,
			Label: pkg.Title,
		})
	}
	return reply
}

func (e *Engine) shopPurchase(cfg config.Snapshot, key string) domain.Reply {
	if !cfg.Features.CurrencyShop {
		return domain.TextReply(msgFeatureDisabled)
	}

	for _, pkg := range cfg.ShopPackages {
		if pkg.Key == key {
			return domain.TextReply(fmt.Sprintf(msgShopStub, pkg.Title, pkg.Amount))
		}
	}
	return domain.TextReply(msgShopNoOffers)
}

// cancelable attaches a cancel button to a flow prompt
func cancelable(text string) domain.Reply {
	return domain.Reply{
		Text:    text,
		Choices: []domain.Choice{{Key: choiceCancel, Label: lblCancel}},
	}
}

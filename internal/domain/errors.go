package domain

import "errors"

// Domain errors returned by the account repository and checked by the
// dialogue engine with errors.Is. Anything the engine does not
// recognize is treated the same as ErrStoreUnavailable.
var (
	ErrDuplicateLogin        = errors.New("login already taken")
	ErrDuplicateTelegramUser = errors.New("telegram user already has an account")
	ErrNotFound              = errors.New("account not found")
	ErrNotOwner              = errors.New("account belongs to another user")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrNotAuthorized         = errors.New("not authorized")
)

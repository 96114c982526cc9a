package validator

import (
	"regexp"
	"strings"
	"unicode"
)

// Field limits
const (
	MinLoginLength    = 3
	MaxLoginLength    = 32
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxEmailLength    = 254
)

// Result is the outcome of a single field validation. Reason is
// user-facing and only set when OK is false.
type Result struct {
	OK     bool
	Reason string
}

func ok() Result {
	return Result{OK: true}
}

func fail(reason string) Result {
	return Result{Reason: reason}
}

var (
	loginPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._-]*[a-zA-Z0-9])?@[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}$`)
)

// Login names that are never allowed regardless of format
var reservedLogins = map[string]struct{}{
	"admin": {}, "administrator": {}, "root": {}, "system": {},
	"support": {}, "moderator": {}, "gm": {}, "gamemaster": {},
	"bot": {}, "server": {}, "console": {}, "account": {},
}

// Passwords rejected as too common
var weakPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyui": {},
	"letmein1": {}, "welcome1": {}, "changeme": {},
}

// Login checks a game-account login: length bounds, latin letters and
// digits only, no surrounding whitespace, not a reserved name.
func Login(s string) Result {
	if s != strings.TrimSpace(s) {
		return fail("логин не должен начинаться или заканчиваться пробелом")
	}
	if len(s) < MinLoginLength {
		return fail("логин слишком короткий (минимум 3 символа)")
	}
	if len(s) > MaxLoginLength {
		return fail("логин слишком длинный (максимум 32 символа)")
	}
	if !loginPattern.MatchString(s) {
		return fail("логин может содержать только латинские буквы и цифры")
	}
	if _, reserved := reservedLogins[strings.ToLower(s)]; reserved {
		return fail("этот логин зарезервирован, выберите другой")
	}
	return ok()
}

// Password checks password strength: length bounds, at least one letter
// and one digit, printable ASCII only, not a known weak password.
func Password(s string) Result {
	if len(s) < MinPasswordLength {
		return fail("пароль слишком короткий (минимум 8 символов)")
	}
	if len(s) > MaxPasswordLength {
		return fail("пароль слишком длинный (максимум 128 символов)")
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII || !unicode.IsPrint(r):
			return fail("пароль может содержать только латинские буквы, цифры и знаки")
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fail("пароль должен содержать хотя бы одну букву и одну цифру")
	}
	if _, weak := weakPasswords[strings.ToLower(s)]; weak {
		return fail("этот пароль слишком простой, выберите другой")
	}
	return ok()
}

// Email performs a structural check only, no delivery verification
func Email(s string) Result {
	if s == "" {
		return fail("e-mail не может быть пустым")
	}
	if len(s) > MaxEmailLength {
		return fail("e-mail слишком длинный")
	}
	if !emailPattern.MatchString(s) {
		return fail("некорректный e-mail")
	}
	return ok()
}

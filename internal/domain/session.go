package domain

// State represents user's current position in a conversation flow
type State string

const (
	StateIdle State = "idle"

	// Registration flow
	StateAwaitingLogin           State = "awaiting_login"
	StateAwaitingPassword        State = "awaiting_password"
	StateAwaitingPasswordConfirm State = "awaiting_password_confirm"

	// Password reset flow
	StateAwaitingResetLogin         State = "awaiting_reset_login"
	StateAwaitingNewPassword        State = "awaiting_new_password"
	StateAwaitingNewPasswordConfirm State = "awaiting_new_password_confirm"

	// Email attach flow
	StateAwaitingEmailLogin State = "awaiting_email_login"
	StateAwaitingEmail      State = "awaiting_email"

	// Account deletion flow
	StateAwaitingDeleteLogin   State = "awaiting_delete_login"
	StateAwaitingDeleteConfirm State = "awaiting_delete_confirm"

	// Admin flows
	StateAwaitingBroadcastText      State = "awaiting_broadcast_text"
	StateAwaitingBroadcastConfirm   State = "awaiting_broadcast_confirm"
	StateAwaitingAdminDeleteLogin   State = "awaiting_admin_delete_login"
	StateAwaitingAdminDeleteConfirm State = "awaiting_admin_delete_confirm"
)

// Session holds the persisted state of a user's in-progress flow.
// Only the fields relevant to the current state are set; everything
// else stays at its zero value.
type Session struct {
	State         State  `json:"state"`
	Login         string `json:"login,omitempty"`
	Password      string `json:"password,omitempty"`
	BroadcastText string `json:"broadcast_text,omitempty"`
}

// IdleSession returns the default session for users with no active flow
func IdleSession() Session {
	return Session{State: StateIdle}
}

// Active reports whether the session has an in-progress flow
func (s Session) Active() bool {
	return s.State != StateIdle && s.State != ""
}

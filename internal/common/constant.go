package common

const (
	// SessionCookieName carries the ephemeral per-visit session id.
	SessionCookieName = "chatmate_session"

	// RememberCookieName carries the signed remember-me token used for
	// session auto-restore.
	RememberCookieName = "chatmate_remember"
)

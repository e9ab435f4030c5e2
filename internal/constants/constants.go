package constants

const (
	// SessionCookieName is the cookie carrying the session ID.
	SessionCookieName = "task_session"

	// ContextKeyUserID is the session and gin context key holding the
	// authenticated user's ID.
	ContextKeyUserID = "user_id"

	// SessionKeyOAuthState holds the anti-CSRF state for an in-flight
	// OAuth authorization flow.
	SessionKeyOAuthState = "oauth_state"

	// SessionKeyOAuthNonce holds the anti-replay nonce for providers
	// that support it.
	SessionKeyOAuthNonce = "oauth_nonce"
)

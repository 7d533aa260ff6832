package constants

const (
	// ContextKeyUserID is the gin context / session key holding the
	// authenticated user's ID.
	ContextKeyUserID = "user_id"

	// SessionCookieName names the session cookie.
	SessionCookieName = "admin_session"

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6

	// DefaultRecentUserCount bounds the dashboard recent-users listing.
	DefaultRecentUserCount = 10
)

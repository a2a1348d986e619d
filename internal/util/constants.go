package util

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	// RequestIDKey holds the per-request id set by the request logger.
	RequestIDKey = "request_id"
	// ContextUserKey holds *Claims once a session has been decoded.
	ContextUserKey = "user"
	// SecureCookiePrefix marks the HTTPS-only twin of the session cookie.
	SecureCookiePrefix = "__Secure-"
)

const (
	LeaderboardLimit   = 10
	MaxDurationSeconds = 24 * 60 * 60
)

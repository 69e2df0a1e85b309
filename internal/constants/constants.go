package constants

const (
	// ContextKeyAccountID is the gin context and session key for the signed-in account.
	ContextKeyAccountID = "account_id"

	// ContextKeyRequestID holds the request identifier.
	ContextKeyRequestID = "request_id"

	// Pending login challenge, kept in the session between challenge and login.
	SessionKeyChallengeAccount = "challenge_account"
	SessionKeyChallengeNonce   = "challenge_nonce"

	SessionCookieName = "registry_session"

	// ChallengeNonceSize is the number of random bytes a login challenge signs.
	ChallengeNonceSize = 32

	// DefaultShares is granted to the creator when no shareholders are given.
	DefaultShares = 10000
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

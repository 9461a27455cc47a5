package constants

// ContextKeyUserID is the gin context key carrying the authenticated user id.
const ContextKeyUserID = "user_id"

// Password policy
const MinPasswordLength = 8

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

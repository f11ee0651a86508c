// Package common contains shared constants used across the portfolio client.
package common

// Keys under which the credential is persisted in the local key/value store.
// Both are written and cleared together.
const (
	AuthTokenKey = "auth_token"
	UserKey      = "user"
)

// HTTP header names used by the transport.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Console routes.
const (
	LoginRoute     = "/admin/login"
	DashboardRoute = "/admin/dashboard"
	AdminPrefix    = "/admin"
)

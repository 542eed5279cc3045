package common

// AuthorizationHeaderName is the HTTP header that carries the access token
// on protected requests, in "Bearer <token>" form.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is stripped from the Authorization header before the token
// is verified.
const BearerPrefix = "Bearer "

// User roles. Every account is created with RoleUser; RoleAdmin is only
// assigned through the adminctl bootstrap path.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

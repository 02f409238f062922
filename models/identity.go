package models

// Identity is the authenticated principal bound to a request context after
// the token signature and the session membership have both been verified.
type Identity struct {
	User  User
	Token string
}

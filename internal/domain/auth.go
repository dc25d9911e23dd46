package domain

import "time"

// IssuedToken is a signed bearer token together with its expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	Token IssuedToken
	User  PublicUser
}

package jwthandling

import "time"

// SESSION_COOKIE_NAME is the cookie the session token travels in.
const SESSION_COOKIE_NAME = "token"

// SessionCookie describes the attributes the session cookie is set with.
// SameSite is always strict, the Secure flag depends on the environment the
// service runs in.
type SessionCookie struct {
	Name     string
	MaxAge   int
	Path     string
	Secure   bool
	HttpOnly bool
}

func NewSessionCookie(expiresIn time.Duration, secure bool) SessionCookie {
	return SessionCookie{
		Name:     SESSION_COOKIE_NAME,
		MaxAge:   int(expiresIn.Seconds()),
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
}

// Cleared returns the variant that removes the cookie on logout.
func (sc SessionCookie) Cleared() SessionCookie {
	sc.MaxAge = -1
	return sc
}

package model

import "time"

// Session is a server-tracked association between a browser and an
// authenticated user. Only the session id travels to the client (inside
// a signed cookie); the record itself lives in the session store.
type Session struct {
	ID        string    // random hex token, generated at login
	UserID    int64     // owner of the session
	ExpiresAt time.Time // absolute expiry; expired sessions resolve to anonymous
	CreatedAt time.Time // when the user logged in
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

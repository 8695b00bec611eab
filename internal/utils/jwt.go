package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The session cookie value is a signed HS256 JWT wrapping the server-side
// session id. The signature lets the auth middleware reject tampered or
// forged cookies before touching the session store; the store lookup is
// what makes logout an actual server-side invalidation.

// ErrInvalidToken is returned for cookies that fail signature or claim
// validation. Callers treat it as "no session" rather than an error page.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the decoded content of a session cookie.
type SessionClaims struct {
	SessionID string // id of the server-side session record
	UserID    int64  // account the session was issued to
}

// NewSessionID returns a cryptographically random 64-character hex id.
func NewSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// NewSessionToken signs a session cookie value for the given session
// record. The exp claim mirrors the store-side expiry so a stale cookie
// is rejected even before the store lookup.
func NewSessionToken(secret []byte, sessionID string, userID int64, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"sub": fmt.Sprintf("%d", userID),
		"iat": time.Now().UTC().Unix(),
		"exp": exp.UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// ParseSessionToken validates a session cookie value and returns its
// claims. Any signature, algorithm or expiry problem yields
// ErrInvalidToken.
func ParseSessionToken(secret []byte, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return SessionClaims{}, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return SessionClaims{}, ErrInvalidToken
	}
	var uid int64
	if _, err := fmt.Sscanf(sub, "%d", &uid); err != nil {
		return SessionClaims{}, ErrInvalidToken
	}
	return SessionClaims{SessionID: sid, UserID: uid}, nil
}

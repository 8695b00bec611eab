// Package utils provides small helpers shared across the application:
// password hashing and the signed session-cookie token.
package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt digest of a plain password at the
// given cost. Cost <= 0 falls back to the bcrypt default.
func HashPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt digest.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

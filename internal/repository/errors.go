// Package repository contains the data access layer, separated from HTTP
// handlers. Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver error strings: not-found conditions
// re-render as a 404 page, uniqueness violations re-show the form with a
// warning and must not change any state.
package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ErrCafeNotFound is returned when a café lookup matches no row.
var ErrCafeNotFound = errors.New("cafe not found")

// ErrCafeNameExists is returned when creating or renaming a café would
// collide with another café's name. Names are globally unique.
var ErrCafeNameExists = errors.New("cafe name already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when signing up with an email that already
// belongs to an account.
var ErrEmailExists = errors.New("email already exists")

// isUniqueViolation reports whether err is the SQLite unique-constraint
// error. The constraint is the enforcement point of last resort: repos
// also check for duplicates up front, but two racing inserts can both
// pass that check and only one survives the constraint.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

package model

// User represents an account record in the `users` table. The email is
// the login identifier and is stored lowercased. PasswordHash holds the
// bcrypt digest of the password; the raw password is never persisted.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address, normalized to lower case.
//	PasswordHash – bcrypt hashed password, never empty.
//	Name         – display name shown in the navigation bar.
type User struct {
	ID           int64  // users.id
	Email        string // users.email (unique)
	PasswordHash string // users.password_hash
	Name         string // users.name
}

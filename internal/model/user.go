package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password is persisted only as a bcrypt hash; the plaintext is
// never stored and the hash is never serialized into API responses
// (handlers define their own response types with explicit fields).
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Name         – display name shown in the UI.
//	Email        – unique email address, stored lowercase.
//	PasswordHash – bcrypt hashed password.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

package models

import "time"

// User is a field technician or breeder account used for authentication.
// Credential material never leaves the persistence and auth layers.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// Name is the display name shown in listings and the TUI header.
	Name string `json:"name"`

	// PasswordHash is the argon2id-encoded credential digest.
	// Never serialized and never compared outside the auth service.
	PasswordHash string `json:"-"`

	// CreatedAt is the account creation time, kept for auditing.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the register/login request body.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

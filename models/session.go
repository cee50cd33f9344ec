package models

import "time"

// Session is the login session a field device persists locally so it can
// keep operating against its own database while offline. The bearer token
// is reused on the next sync pass; an expired token only matters once
// connectivity returns.
type Session struct {
	Login     string    `json:"login"`
	Token     string    `json:"-"`
	UserID    int64     `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the table in database.
func (s *Session) TableName() string {
	return "session"
}

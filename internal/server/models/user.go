// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a stored account. PasswordHash is only populated by the login
// lookup path and never serialized.
type User struct {
	ID                string
	UserName          string
	PasswordHash      string `json:"-"`
	ProfilePictureURL *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WithoutPasswordHash returns a copy safe to hand outward.
func (u *User) WithoutPasswordHash() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	return &c
}

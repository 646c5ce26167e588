package entity

import "time"

// User represents an account row in the `users` table.
// PasswordHash never leaves the user package; it has no JSON encoding.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PublicView is the projection returned to API clients.
type PublicView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func (u *User) Public() PublicView {
	return PublicView{ID: u.ID, Email: u.Email}
}

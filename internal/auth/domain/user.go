package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // unique, stored case-sensitive
	PasswordHash string // argon2id encoded, never plaintext
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

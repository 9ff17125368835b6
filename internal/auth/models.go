package auth

import "time"

type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

type SignupForm struct {
	Email    string
	Username string
	Password string
	FullName string
}

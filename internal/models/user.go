package models

// User represents a registered account.
type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Name         *string `json:"name"`
	PasswordHash string  `json:"-"` // Never expose this to the client
}

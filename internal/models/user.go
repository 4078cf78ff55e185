package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the public listing view of a user: no id, no hash.
type UserSummary struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

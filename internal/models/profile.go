package models

import "time"

// Profile is a user's public identity.
type Profile struct {
	UserID          string    `json:"user_id"`
	Username        string    `json:"username"`
	BarsVisited     int       `json:"bars_visited"`
	ReputationScore int       `json:"reputation_score"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// User is an authenticated account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

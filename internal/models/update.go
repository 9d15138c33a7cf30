package models

import "time"

// Update is a short post from a fan at a venue during a match.
type Update struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	VenueID   string    `json:"venue_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"` // Joined from profiles
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// RankedUpdate decorates an update with its upvote state.
type RankedUpdate struct {
	Update
	Upvotes int  `json:"upvotes"`
	Upvoted bool `json:"upvoted"`
}

// UpvoteResult reports the outcome of a toggle.
type UpvoteResult struct {
	Upvoted bool `json:"upvoted"`
	Count   int  `json:"count"`
}

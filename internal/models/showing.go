package models

import "time"

// ShowingStatus records whether a venue intends to broadcast a match.
type ShowingStatus string

const (
	ShowingStatusShowing    ShowingStatus = "showing"
	ShowingStatusNotShowing ShowingStatus = "not_showing"
)

// Valid reports whether the status can be stored.
func (s ShowingStatus) Valid() bool {
	return s == ShowingStatusShowing || s == ShowingStatusNotShowing
}

// Showing is one (match, venue) broadcast declaration.
type Showing struct {
	MatchID   string        `json:"match_id"`
	VenueID   string        `json:"venue_id"`
	Status    ShowingStatus `json:"status"`
	Note      *string       `json:"note,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ShowingWithVenue includes the joined venue row.
type ShowingWithVenue struct {
	Showing
	Venue *Venue `json:"venue,omitempty"`
}

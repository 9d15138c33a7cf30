package models

import "time"

// BarType distinguishes general sports bars from supporters' club bars.
type BarType string

const (
	BarTypeGeneral BarType = "general"
	BarTypeClub    BarType = "club"
)

// Venue represents a bar listed in the directory.
type Venue struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Neighborhood string    `json:"neighborhood"`
	BarType      BarType   `json:"bar_type"`
	ClubName     *string   `json:"club_name,omitempty"` // Only set for club bars
	Address      *string   `json:"address,omitempty"`
	Claimable    bool      `json:"claimable"`
	CreatedAt    time.Time `json:"created_at"`
}

// Label renders the bar type the way listings display it.
func (v Venue) Label() string {
	if v.BarType == BarTypeClub && v.ClubName != nil && *v.ClubName != "" {
		return "Club-Specific: " + *v.ClubName
	}
	return "General Sports Bar"
}

package models

import "time"

// ClaimStatus tracks review of a venue claim.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// BusinessInfo is the contact data submitted with a claim.
type BusinessInfo struct {
	Name  string `json:"business_name"`
	Email string `json:"business_email"`
	Phone string `json:"business_phone"`
}

// VenueClaim is a request to manage a venue.
type VenueClaim struct {
	ID         string      `json:"id"`
	VenueID    string      `json:"venue_id"`
	UserID     string      `json:"user_id"`
	Business   BusinessInfo `json:"business"`
	Status     ClaimStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	ReviewedAt *time.Time  `json:"reviewed_at,omitempty"`
	ReviewedBy *string     `json:"reviewed_by,omitempty"`

	// Populated by admin listings
	VenueName         string `json:"venue_name,omitempty"`
	VenueNeighborhood string `json:"venue_neighborhood,omitempty"`
}

// VenueAdmin grants a user manage rights on a venue.
type VenueAdmin struct {
	VenueID           string    `json:"venue_id"`
	UserID            string    `json:"user_id"`
	AddedAt           time.Time `json:"added_at"`
	VenueName         string    `json:"venue_name"`
	VenueNeighborhood string    `json:"venue_neighborhood"`
}

// AdminStats summarises platform totals for the admin dashboard.
type AdminStats struct {
	TotalVenues   int `json:"total_venues"`
	TotalClaims   int `json:"total_claims"`
	TotalAdmins   int `json:"total_admins"`
	TotalShowings int `json:"total_showings"`
}

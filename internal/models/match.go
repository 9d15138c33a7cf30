package models

import "time"

// MatchStatus tracks a fixture's lifecycle.
type MatchStatus string

const (
	MatchStatusUpcoming MatchStatus = "upcoming"
	MatchStatusLive     MatchStatus = "live"
	MatchStatusFinished MatchStatus = "finished"
)

// Match represents a fixture in the catalog.
type Match struct {
	ID            string      `json:"id"`
	League        string      `json:"league"`
	HomeTeam      string      `json:"home_team"`
	AwayTeam      string      `json:"away_team"`
	HomeTeamCrest *string     `json:"home_team_crest,omitempty"`
	AwayTeamCrest *string     `json:"away_team_crest,omitempty"`
	KickoffTime   time.Time   `json:"kickoff_time"`
	Status        MatchStatus `json:"status"`
}

// MatchFilter narrows upcoming match listings.
type MatchFilter struct {
	From  time.Time
	To    time.Time
	Team  string // Case-insensitive match on either side
	Limit int
}

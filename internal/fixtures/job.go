package fixtures

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"matchday/internal/footballdata"
	"matchday/internal/models"
)

// ErrMissingAPIKey is returned before any I/O when no football-data key is configured.
var ErrMissingAPIKey = errors.New("football-data API key missing")

// DefaultWindowDays is how far ahead fixtures are fetched.
const DefaultWindowDays = 30

// Competition maps an upstream competition onto local match ids and labels.
type Competition struct {
	Code   string // football-data competition id or code
	Prefix string // local id prefix, e.g. "epl"
	League string
}

// PremierLeague is the competition synced when none are configured.
var PremierLeague = Competition{Code: "2021", Prefix: "epl", League: "Premier League"}

// Source fetches fixtures for a competition.
type Source interface {
	CompetitionMatches(ctx context.Context, competition string, from, to time.Time) ([]footballdata.Match, error)
}

// Store persists synced fixtures.
type Store interface {
	UpsertMatches(ctx context.Context, matches []models.Match) error
	FinishStaleMatches(ctx context.Context, now time.Time) (int64, error)
}

// Config controls a sync run.
type Config struct {
	APIKey       string
	WindowDays   int
	Competitions []Competition
}

// Result summarises a sync run.
type Result struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// Job pulls upcoming fixtures into the match catalog. It is the only bulk
// writer of matches.
type Job struct {
	source Source
	store  Store
	cfg    Config
	now    func() time.Time
}

// New constructs a sync Job.
func New(source Source, store Store, cfg Config) *Job {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultWindowDays
	}
	if len(cfg.Competitions) == 0 {
		cfg.Competitions = []Competition{PremierLeague}
	}
	return &Job{source: source, store: store, cfg: cfg, now: time.Now}
}

// Run fetches every configured competition, upserts the scheduled fixtures in
// one transaction, then marks past upcoming matches finished. Any fetch
// failure aborts before writing. A failed sweep is logged only.
func (j *Job) Run(ctx context.Context) (*Result, error) {
	if j.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	now := j.now().UTC()
	from := now
	to := now.AddDate(0, 0, j.cfg.WindowDays)

	var rows []models.Match
	for _, comp := range j.cfg.Competitions {
		log.Info().
			Str("competition", comp.Code).
			Str("date_from", from.Format("2006-01-02")).
			Str("date_to", to.Format("2006-01-02")).
			Msg("fetching fixtures")

		fetched, err := j.source.CompetitionMatches(ctx, comp.Code, from, to)
		if err != nil {
			return nil, fmt.Errorf("fetch %s fixtures: %w", comp.League, err)
		}

		scheduled := 0
		for _, m := range fetched {
			if !m.Scheduled() {
				continue
			}
			rows = append(rows, toMatch(comp, m))
			scheduled++
		}

		log.Info().
			Str("competition", comp.Code).
			Int("fetched", len(fetched)).
			Int("scheduled", scheduled).
			Msg("fixtures fetched")
	}

	if err := j.store.UpsertMatches(ctx, rows); err != nil {
		return nil, err
	}

	if finished, err := j.store.FinishStaleMatches(ctx, now); err != nil {
		log.Warn().Err(err).Msg("marking past matches finished failed")
	} else if finished > 0 {
		log.Info().Int64("finished", finished).Msg("past matches marked finished")
	}

	return &Result{
		Count:   len(rows),
		Message: fmt.Sprintf("Synced %d matches", len(rows)),
	}, nil
}

func toMatch(comp Competition, m footballdata.Match) models.Match {
	match := models.Match{
		ID:          comp.Prefix + "-" + strconv.FormatInt(m.ID, 10),
		League:      comp.League,
		HomeTeam:    m.HomeTeam.Name,
		AwayTeam:    m.AwayTeam.Name,
		KickoffTime: m.UTCDate.UTC(),
		Status:      models.MatchStatusUpcoming,
	}
	if m.HomeTeam.Crest != "" {
		crest := m.HomeTeam.Crest
		match.HomeTeamCrest = &crest
	}
	if m.AwayTeam.Crest != "" {
		crest := m.AwayTeam.Crest
		match.AwayTeamCrest = &crest
	}
	return match
}

package fixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday/internal/footballdata"
	"matchday/internal/models"
)

type stubSource struct {
	calls   int
	matches map[string][]footballdata.Match
	err     error
}

func (s *stubSource) CompetitionMatches(ctx context.Context, competition string, from, to time.Time) ([]footballdata.Match, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.matches[competition], nil
}

type stubStore struct {
	upserted  []models.Match
	upserts   int
	sweeps    int
	sweepErr  error
	sweptAt   time.Time
	upsertErr error
}

func (s *stubStore) UpsertMatches(ctx context.Context, matches []models.Match) error {
	s.upserts++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, matches...)
	return nil
}

func (s *stubStore) FinishStaleMatches(ctx context.Context, now time.Time) (int64, error) {
	s.sweeps++
	s.sweptAt = now
	return 2, s.sweepErr
}

func fixture(id int64, status string) footballdata.Match {
	return footballdata.Match{
		ID:       id,
		UTCDate:  time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC),
		Status:   status,
		HomeTeam: footballdata.Team{Name: "Arsenal FC", Crest: "https://crests/57.png"},
		AwayTeam: footballdata.Team{Name: "Chelsea FC"},
	}
}

func TestRunMissingAPIKey(t *testing.T) {
	src := &stubSource{}
	st := &stubStore{}

	_, err := New(src, st, Config{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, src.calls)
	assert.Zero(t, st.upserts)
	assert.Zero(t, st.sweeps)
}

func TestRunUpsertsScheduledOnly(t *testing.T) {
	src := &stubSource{matches: map[string][]footballdata.Match{
		"2021": {fixture(1, "SCHEDULED"), fixture(2, "TIMED"), fixture(3, "FINISHED"), fixture(4, "IN_PLAY")},
	}}
	st := &stubStore{}
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	job := New(src, st, Config{APIKey: "k"})
	job.now = func() time.Time { return now }

	res, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "Synced 2 matches", res.Message)

	require.Len(t, st.upserted, 2)
	m := st.upserted[0]
	assert.Equal(t, "epl-1", m.ID)
	assert.Equal(t, "Premier League", m.League)
	assert.Equal(t, models.MatchStatusUpcoming, m.Status)
	require.NotNil(t, m.HomeTeamCrest)
	assert.Nil(t, m.AwayTeamCrest)
	assert.Equal(t, "epl-2", st.upserted[1].ID)

	assert.Equal(t, 1, st.sweeps)
	assert.Equal(t, now, st.sweptAt)
}

func TestRunFetchFailureWritesNothing(t *testing.T) {
	src := &stubSource{err: errors.New("429 Too Many Requests")}
	st := &stubStore{}

	_, err := New(src, st, Config{APIKey: "k"}).Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, st.upserts)
	assert.Zero(t, st.sweeps)
}

func TestRunSweepFailureIsNotFatal(t *testing.T) {
	src := &stubSource{matches: map[string][]footballdata.Match{"2021": {fixture(1, "TIMED")}}}
	st := &stubStore{sweepErr: errors.New("db down")}

	res, err := New(src, st, Config{APIKey: "k"}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestRunUpsertFailureSkipsSweep(t *testing.T) {
	src := &stubSource{matches: map[string][]footballdata.Match{"2021": {fixture(1, "TIMED")}}}
	st := &stubStore{upsertErr: errors.New("db down")}

	_, err := New(src, st, Config{APIKey: "k"}).Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, st.sweeps)
}

func TestRunMultipleCompetitions(t *testing.T) {
	src := &stubSource{matches: map[string][]footballdata.Match{
		"2021": {fixture(1, "TIMED")},
		"2014": {fixture(9, "SCHEDULED")},
	}}
	st := &stubStore{}

	res, err := New(src, st, Config{
		APIKey: "k",
		Competitions: []Competition{
			PremierLeague,
			{Code: "2014", Prefix: "laliga", League: "La Liga"},
		},
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "laliga-9", st.upserted[1].ID)
	assert.Equal(t, "La Liga", st.upserted[1].League)
	assert.Equal(t, 2, src.calls)
}

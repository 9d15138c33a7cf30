package results

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"matchday/internal/app/feed"
	"matchday/internal/logging"
	"matchday/internal/models"
)

// PreviewsPerVenue is how many recent updates each row carries.
const PreviewsPerVenue = 2

// StatusUnknown marks venues that have not declared a showing.
const StatusUnknown = "unknown"

// Store defines the reads the results view joins together
type Store interface {
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	ListVenues(ctx context.Context) ([]*models.Venue, error)
	ListShowingsForMatch(ctx context.Context, matchID string) ([]*models.ShowingWithVenue, error)
	GoingCountsByVenue(ctx context.Context, matchID string) (map[string]int, error)
	LatestUpdatesPerVenue(ctx context.Context, matchID string, perVenue int) (map[string][]*models.Update, error)
	UpvoteCounts(ctx context.Context, updateIDs []string) (map[string]int, error)
}

// VenueRow is one venue's line in the results for a match.
type VenueRow struct {
	Venue      *models.Venue          `json:"venue"`
	Status     string                 `json:"status"`
	Note       *string                `json:"note,omitempty"`
	GoingCount int                    `json:"going_count"`
	Previews   []*models.RankedUpdate `json:"previews"`
}

// MatchResults lists every venue for a match, showing venues first.
type MatchResults struct {
	Match  *models.Match `json:"match"`
	Venues []*VenueRow   `json:"venues"`
}

// Service builds the per-match venue view
type Service interface {
	ForMatch(ctx context.Context, matchID string) (*MatchResults, error)
}

type service struct {
	store Store
}

// New constructs a results Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) ForMatch(ctx context.Context, matchID string) (*MatchResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		match    *models.Match
		venues   []*models.Venue
		showings []*models.ShowingWithVenue
		going    map[string]int
		previews map[string][]*models.Update
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		match, err = s.store.GetMatch(gctx, matchID)
		return err
	})
	g.Go(func() error {
		var err error
		venues, err = s.store.ListVenues(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		showings, err = s.store.ListShowingsForMatch(gctx, matchID)
		return err
	})
	g.Go(func() error {
		var err error
		going, err = s.store.GoingCountsByVenue(gctx, matchID)
		if err != nil {
			logging.WithContext(ctx).Warn().Err(err).Str("match_id", matchID).Msg("going counts failed")
			going = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		previews, err = s.store.LatestUpdatesPerVenue(gctx, matchID, PreviewsPerVenue)
		if err != nil {
			logging.WithContext(ctx).Warn().Err(err).Str("match_id", matchID).Msg("update previews failed")
			previews = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	upvotes := s.upvotesFor(ctx, previews)

	byVenue := make(map[string]*models.ShowingWithVenue, len(showings))
	for _, sh := range showings {
		byVenue[sh.VenueID] = sh
	}

	rows := make([]*VenueRow, 0, len(venues))
	for _, v := range venues {
		row := &VenueRow{
			Venue:      v,
			Status:     StatusUnknown,
			GoingCount: going[v.ID],
			Previews:   rankPreviews(previews[v.ID], upvotes),
		}
		if sh, ok := byVenue[v.ID]; ok {
			row.Status = string(sh.Status)
			row.Note = sh.Note
		}
		rows = append(rows, row)
	}
	SortRows(rows)

	return &MatchResults{Match: match, Venues: rows}, nil
}

func (s *service) upvotesFor(ctx context.Context, previews map[string][]*models.Update) map[string]int {
	var ids []string
	for _, updates := range previews {
		for _, u := range updates {
			ids = append(ids, u.ID)
		}
	}
	if len(ids) == 0 {
		return map[string]int{}
	}

	counts, err := s.store.UpvoteCounts(ctx, ids)
	if err != nil {
		logging.WithContext(ctx).Warn().Err(err).Msg("preview upvote counts failed")
		return map[string]int{}
	}
	return counts
}

func rankPreviews(updates []*models.Update, upvotes map[string]int) []*models.RankedUpdate {
	ranked := make([]*models.RankedUpdate, 0, len(updates))
	for _, u := range updates {
		ranked = append(ranked, &models.RankedUpdate{Update: *u, Upvotes: upvotes[u.ID]})
	}
	feed.SortByUpvotes(ranked)
	return ranked
}

func statusRank(status string) int {
	switch status {
	case string(models.ShowingStatusShowing):
		return 0
	case string(models.ShowingStatusNotShowing):
		return 1
	default:
		return 2
	}
}

// SortRows puts showing venues first, then not showing, then unknown.
// Ties keep their incoming order.
func SortRows(rows []*VenueRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return statusRank(rows[i].Status) < statusRank(rows[j].Status)
	})
}

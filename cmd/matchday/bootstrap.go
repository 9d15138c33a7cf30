package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"matchday/internal/models"
	"matchday/internal/store"
)

func strPtr(s string) *string { return &s }

// seedVenues is the launch directory of bars.
var seedVenues = []*models.Venue{
	{
		ID:           "red-lion",
		Name:         "The Red Lion",
		Neighborhood: "East Village",
		BarType:      models.BarTypeClub,
		ClubName:     strPtr("Liverpool"),
		Claimable:    true,
	},
	{
		ID:           "legends",
		Name:         "Legends",
		Neighborhood: "Midtown",
		BarType:      models.BarTypeGeneral,
		Claimable:    true,
	},
	{
		ID:           "football-factory",
		Name:         "Football Factory",
		Neighborhood: "Lower East Side",
		BarType:      models.BarTypeGeneral,
		Claimable:    true,
	},
}

// bootstrap seeds the venue directory and grants configured site admins.
// Existing rows are left alone.
func bootstrap(ctx context.Context, dataStore *store.Store, adminIDs []string) error {
	for _, v := range seedVenues {
		created, err := dataStore.EnsureVenue(ctx, v)
		if err != nil {
			return fmt.Errorf("seed venue %s: %w", v.ID, err)
		}
		if created {
			log.Info().Str("venue_id", v.ID).Msg("venue seeded")
		}
	}

	for _, id := range adminIDs {
		if err := dataStore.GrantAdmin(ctx, id); err != nil {
			// the user may not have signed in yet
			log.Warn().Err(err).Str("user_id", id).Msg("grant admin failed")
			continue
		}
		log.Info().Str("user_id", id).Msg("admin granted")
	}
	return nil
}

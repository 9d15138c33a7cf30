package main

import (
	"net/http"

	"matchday/internal/app/claims"
	"matchday/internal/app/feed"
	"matchday/internal/app/going"
	"matchday/internal/app/identity"
	"matchday/internal/app/matches"
	"matchday/internal/app/moderation"
	"matchday/internal/app/profiles"
	"matchday/internal/app/results"
	"matchday/internal/app/showings"
	"matchday/internal/app/venues"
	"matchday/internal/auth"
	"matchday/internal/config"
	"matchday/internal/fixtures"
	"matchday/internal/footballdata"
	"matchday/internal/http/middleware"
	"matchday/internal/httpapi"
	"matchday/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store) http.Handler {
	tokens := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.SessionTTL)

	syncJob := fixtures.New(
		footballdata.NewClient(cfg.Fixtures.APIKey, cfg.Fixtures.BaseURL),
		dataStore,
		cfg.FixtureJobConfig(),
	)

	api := httpapi.New(httpapi.Services{
		Identity:   identity.New(dataStore, tokens, identity.LogMailer{}, cfg.Security.LoginURL),
		Venues:     venues.New(dataStore),
		Matches:    matches.New(dataStore),
		Showings:   showings.New(dataStore),
		Going:      going.New(dataStore),
		Feed:       feed.New(dataStore),
		Profiles:   profiles.New(dataStore),
		Claims:     claims.New(dataStore),
		Moderation: moderation.New(dataStore),
		Results:    results.New(dataStore),
		Sync:       syncJob,
	}, cfg.Security.SyncSecret)

	return middleware.Chain(
		api.Routes(),
		middleware.Recovery(),
		middleware.RequestLogging(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
}

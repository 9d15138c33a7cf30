// Command syncfixtures pulls upcoming fixtures from football-data.org into the
// match catalog once and exits. It is meant to be run by a scheduler.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"matchday/internal/config"
	"matchday/internal/fixtures"
	"matchday/internal/footballdata"
	"matchday/internal/logging"
	"matchday/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("fixture sync failed")
	}
}

func run() error {
	if err := config.LoadEnvFiles(); err != nil {
		return err
	}
	cfg, err := config.LoadForSync()
	if err != nil {
		return err
	}

	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	job := fixtures.New(
		footballdata.NewClient(cfg.Fixtures.APIKey, cfg.Fixtures.BaseURL),
		store.New(db),
		cfg.FixtureJobConfig(),
	)

	res, err := job.Run(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("count", res.Count).Msg(res.Message)
	return nil
}

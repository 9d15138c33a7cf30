package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://matchday@localhost/matchday")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 720*time.Hour, cfg.Security.SessionTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 30, cfg.Fixtures.WindowDays)
	require.Len(t, cfg.Fixtures.Competitions, 1)
	assert.Equal(t, "epl", cfg.Fixtures.Competitions[0].Prefix)
	assert.Equal(t, "Premier League", cfg.Fixtures.Competitions[0].League)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadBuildsDatabaseURL(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "matchday")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "matchday")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://matchday:pw@db:6543/matchday?sslmode=disable", cfg.Database.URL)
}

func TestValidateAggregatesProblems(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := Load()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "DATABASE_URL is required")
	assert.Contains(t, msg, "JWT_SECRET must be at least 16 characters")
	assert.Contains(t, msg, "LOG_LEVEL must be one of")
	assert.Equal(t, 3, strings.Count(msg, "\n  - "))
}

func TestParseCompetitions(t *testing.T) {
	comps, err := parseCompetitions("2021:epl:Premier League, 2014:laliga:La Liga")
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, "2014", comps[1].Code)
	assert.Equal(t, "La Liga", comps[1].League)

	_, err = parseCompetitions("2021:epl")
	assert.Error(t, err)
}

func TestLoadEnvFilesSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MATCHDAY_TEST_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MATCHDAY_TEST_VALUE") })

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("MATCHDAY_TEST_VALUE"))
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"matchday/internal/fixtures"
)

// Config holds all application configuration
type Config struct {
	Env      string
	Database DatabaseConfig
	Server   ServerConfig
	Security SecurityConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Fixtures FixturesConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds security-related settings
type SecurityConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
	SyncSecret string // Bearer token for the sync trigger; empty disables it
	LoginURL   string // Page that completes an emailed sign-in

	// AdminUserIDs are granted site admin at startup.
	AdminUserIDs []string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// FixturesConfig holds football-data sync settings
type FixturesConfig struct {
	APIKey       string
	BaseURL      string
	WindowDays   int
	Competitions []fixtures.Competition
}

// LoadEnvFiles loads the first .env style files that exist. Values already in
// the environment win.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{"config/local.env", ".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 8080)
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "60s")
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("LOGIN_URL", "http://localhost:3000/auth/callback")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4")
	v.SetDefault("FIXTURE_WINDOW_DAYS", fixtures.DefaultWindowDays)
	v.SetDefault("FIXTURE_COMPETITIONS", "2021:epl:Premier League")
	return v
}

// Load reads configuration from the environment and validates it
func Load() (*Config, error) {
	cfg, err := load(newViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadForSync reads configuration for the one-shot sync command, which needs
// only the database and the football-data settings.
func LoadForSync() (*Config, error) {
	cfg, err := load(newViper())
	if err != nil {
		return nil, err
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	return cfg, nil
}

func load(v *viper.Viper) (*Config, error) {
	cfg := &Config{Env: strings.ToLower(v.GetString("ENV"))}

	cfg.loadDatabase(v)
	cfg.Server = ServerConfig{
		Host:            v.GetString("HOST"),
		Port:            v.GetInt("PORT"),
		ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
		ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
	}
	cfg.Security = SecurityConfig{
		JWTSecret:  v.GetString("JWT_SECRET"),
		SessionTTL: v.GetDuration("SESSION_TTL"),
		SyncSecret: v.GetString("SYNC_SECRET"),
		LoginURL:   v.GetString("LOGIN_URL"),

		AdminUserIDs: splitList(v.GetString("ADMIN_USER_IDS")),
	}
	cfg.CORS.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.Logging = LoggingConfig{
		Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
		Format: strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	competitions, err := parseCompetitions(v.GetString("FIXTURE_COMPETITIONS"))
	if err != nil {
		return nil, fmt.Errorf("load fixtures config: %w", err)
	}
	cfg.Fixtures = FixturesConfig{
		APIKey:       v.GetString("FOOTBALL_DATA_API_KEY"),
		BaseURL:      v.GetString("FOOTBALL_DATA_BASE_URL"),
		WindowDays:   v.GetInt("FIXTURE_WINDOW_DAYS"),
		Competitions: competitions,
	}

	return cfg, nil
}

func (c *Config) loadDatabase(v *viper.Viper) {
	c.Database.URL = v.GetString("DATABASE_URL")
	c.Database.Host = v.GetString("DB_HOST")
	c.Database.User = v.GetString("DB_USER")
	c.Database.Password = v.GetString("DB_PASSWORD")
	c.Database.Name = v.GetString("DB_NAME")
	c.Database.SSLMode = v.GetString("DB_SSLMODE")
	c.Database.Port = v.GetInt("DB_PORT")
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}

	if c.Database.URL == "" && c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
}

// parseCompetitions reads "code:prefix:league" entries separated by commas.
func parseCompetitions(raw string) ([]fixtures.Competition, error) {
	var out []fixtures.Competition
	for _, entry := range splitList(raw) {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid competition %q, want code:prefix:league", entry)
		}
		out = append(out, fixtures.Competition{
			Code:   strings.TrimSpace(parts[0]),
			Prefix: strings.TrimSpace(parts[1]),
			League: strings.TrimSpace(parts[2]),
		})
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var problems []string

	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	if c.Security.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	} else if len(c.Security.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 characters")
	}
	if c.Security.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	if c.Fixtures.WindowDays < 1 {
		problems = append(problems, "FIXTURE_WINDOW_DAYS must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}

// FixtureJobConfig converts the fixture settings for the sync job
func (c *Config) FixtureJobConfig() fixtures.Config {
	return fixtures.Config{
		APIKey:       c.Fixtures.APIKey,
		WindowDays:   c.Fixtures.WindowDays,
		Competitions: c.Fixtures.Competitions,
	}
}

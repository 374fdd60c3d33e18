// internal/config/config.go
//
// Runtime configuration.
// Load reads an optional .env file (development), then parses the process
// environment into Config. Command-line flags override individual fields.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/wordguess/internal/game"
)

// Config holds every tunable of the game, the word client and the API.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"` // play mode only; empty discards

	// Round defaults.
	Language   string `env:"WORDLE_LANGUAGE" envDefault:"en"`
	Difficulty string `env:"WORDLE_DIFFICULTY" envDefault:"medium"`
	Scoring    string `env:"WORDLE_SCORING" envDefault:"contains"`

	// Word provider.
	WordAPIURL     string        `env:"WORD_API_URL" envDefault:"https://random-word-api.herokuapp.com"`
	WordAPITimeout time.Duration `env:"WORD_API_TIMEOUT" envDefault:"10s"`
	WordMaxDraws   uint          `env:"WORD_MAX_DRAWS" envDefault:"50"`
	WordDrawDelay  time.Duration `env:"WORD_DRAW_DELAY" envDefault:"100ms"`
	WordLengthHint bool          `env:"WORD_LENGTH_HINT" envDefault:"false"`

	// Local API.
	Port         string        `env:"PORT" envDefault:"5175"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	RoundSecret  string        `env:"ROUND_SECRET" envDefault:"dev_secret_change_me"`
	RoundTTL     time.Duration `env:"ROUND_TTL" envDefault:"24h"`

	// AllowFixedTarget lets API clients choose the target word. Testing only.
	AllowFixedTarget bool `env:"ALLOW_FIXED_TARGET" envDefault:"false"`
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment only.
func Parse() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the round defaults and limits.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	if _, err := game.ParseScoring(c.Scoring); err != nil {
		return err
	}
	if c.WordMaxDraws == 0 {
		return fmt.Errorf("WORD_MAX_DRAWS must be at least 1")
	}
	if c.RoundTTL <= 0 {
		return fmt.Errorf("ROUND_TTL must be positive")
	}
	return nil
}

// Settings returns the configured round defaults.
func (c *Config) Settings() game.Settings {
	d, err := game.ParseDifficulty(c.Difficulty)
	if err != nil {
		d = game.Difficulty(c.Difficulty)
	}
	return game.Settings{Language: c.Language, Difficulty: d}
}

// ScoringMode returns the configured evaluation policy.
func (c *Config) ScoringMode() game.Scoring {
	sc, err := game.ParseScoring(c.Scoring)
	if err != nil {
		return game.ScoringContains
	}
	return sc
}

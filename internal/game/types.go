// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - LetterStatus: per-letter result of a guess (correct/present/absent).
//   - EvaluatedGuess: one submitted guess plus its statuses.
//   - Status: lifecycle of a session (awaiting_word → in_progress → won/lost).
//   - Difficulty + Settings: the configuration surface consumed by the core.

package game

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// LetterStatus represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter matches the target at the same position.
//   - "present": letter exists in the target but at a different position.
//   - "absent":  letter does not occur in the target.
type LetterStatus string

const (
	Correct LetterStatus = "correct"
	Present LetterStatus = "present"
	Absent  LetterStatus = "absent"
)

// EvaluatedGuess pairs a submitted word with one status per position.
type EvaluatedGuess struct {
	Word     Word           `json:"word"`
	Statuses []LetterStatus `json:"statuses"`
}

// Solved reports whether every position is Correct.
func (e EvaluatedGuess) Solved() bool {
	if len(e.Statuses) == 0 {
		return false
	}
	for _, s := range e.Statuses {
		if s != Correct {
			return false
		}
	}
	return true
}

// Status is the coarse state of a session.
type Status string

const (
	StatusAwaitingWord Status = "awaiting_word"
	StatusInProgress   Status = "in_progress"
	StatusWon          Status = "won"
	StatusLost         Status = "lost"
)

// Terminal reports whether no further guesses can be accepted in this round.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Difficulty selects the word length of a round.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty accepts easy, medium or hard (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSettings, s)
}

// WordLength maps difficulty to letters per word: easy 4, medium 5, hard 6.
// Unknown values fall back to medium.
func (d Difficulty) WordLength() int {
	switch d {
	case Easy:
		return 4
	case Hard:
		return 6
	default:
		return 5
	}
}

// MaxAttempts is one more than the word length.
func (d Difficulty) MaxAttempts() int { return d.WordLength() + 1 }

// Settings is what a player picks before a round starts.
type Settings struct {
	Language   string     `json:"language"`   // BCP 47 tag passed to the word provider, e.g. "en", "es"
	Difficulty Difficulty `json:"difficulty"` // easy | medium | hard
}

// DefaultSettings mirrors the settings screen defaults.
func DefaultSettings() Settings {
	return Settings{Language: "en", Difficulty: Medium}
}

// Validate checks the language tag is well formed and the difficulty is known.
func (s Settings) Validate() error {
	if _, err := language.Parse(s.Language); err != nil {
		return fmt.Errorf("%w: language %q: %v", ErrInvalidSettings, s.Language, err)
	}
	if _, err := ParseDifficulty(string(s.Difficulty)); err != nil {
		return err
	}
	return nil
}

// Tag returns the parsed language tag, or language.Und when malformed.
func (s Settings) Tag() language.Tag {
	t, err := language.Parse(s.Language)
	if err != nil {
		return language.Und
	}
	return t
}

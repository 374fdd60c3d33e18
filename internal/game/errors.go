// internal/game/errors.go
//
// Sentinel errors of the game core. Callers classify them with errors.Is;
// every one leaves the session unchanged.

package game

import "errors"

var (
	// ErrWordFetchFailed is returned when no target word could be obtained.
	// The session stays in StatusAwaitingWord; retrying is up to the caller.
	ErrWordFetchFailed = errors.New("word fetch failed")

	// ErrInvalidGuessLength is returned when a guess has a different letter
	// count than the target. State is not mutated.
	ErrInvalidGuessLength = errors.New("invalid guess length")

	// ErrInvalidLetters is returned when a guess contains non-letter characters.
	ErrInvalidLetters = errors.New("guess must contain letters only")

	// ErrSessionNotActive is returned when guessing outside StatusInProgress.
	ErrSessionNotActive = errors.New("session not active")

	// ErrInvalidRound is returned by StartNewRound for an empty target or
	// fewer than one attempt.
	ErrInvalidRound = errors.New("invalid round")

	// ErrInvalidSettings is returned for unknown difficulties or malformed
	// language tags.
	ErrInvalidSettings = errors.New("invalid settings")
)

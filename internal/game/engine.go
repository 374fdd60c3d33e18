// internal/game/engine.go
//
// Session state machine for one player's game.
// Responsibilities:
//   - Hold the target word, the attempt history and the round limits.
//   - Validate and apply guesses (active round, letter count, letters only).
//   - Track state transitions: awaiting_word → in_progress → won/lost.
//   - Fetch a target word through a WordProvider when a round begins.
//
// Notes:
//   - A Session is not safe for concurrent use; callers serialise access
//     (the store does this for the HTTP layer).
//   - The win check runs before the attempt-exhaustion check, so solving on
//     the final attempt is a win.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// WordProvider supplies target words. Implementations must return a word of
// exactly length letters, or an error.
type WordProvider interface {
	FetchWord(ctx context.Context, language string, length int) (string, error)
}

// Session holds the state of a single game, across resets.
type Session struct {
	id          string
	settings    Settings
	evaluator   Evaluator
	target      Word
	maxAttempts int
	guesses     []EvaluatedGuess
	status      Status
}

// Option configures a Session.
type Option func(*Session)

// WithScoring selects the evaluation policy (default ScoringContains).
func WithScoring(sc Scoring) Option {
	return func(s *Session) { s.evaluator.Scoring = sc }
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession constructs an empty session awaiting its first target word.
func NewSession(settings Settings, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		settings: settings,
		status:   StatusAwaitingWord,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.evaluator.Tag = settings.Tag()
	return s
}

// Begin discards any current round, fetches a word matching the session
// settings and starts a round with it. On failure the session is left in
// StatusAwaitingWord and the error wraps ErrWordFetchFailed.
func (s *Session) Begin(ctx context.Context, p WordProvider) error {
	s.Clear()
	length := s.settings.Difficulty.WordLength()

	raw, err := p.FetchWord(ctx, s.settings.Language, length)
	if err != nil {
		if errors.Is(err, ErrWordFetchFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrWordFetchFailed, err)
	}
	return s.BeginWith(raw)
}

// BeginWith starts a round on a word fetched elsewhere (for callers that
// fetch asynchronously). The word must match the configured length; if it
// does not, the session is left in StatusAwaitingWord and the error wraps
// ErrWordFetchFailed.
func (s *Session) BeginWith(raw string) error {
	length := s.settings.Difficulty.WordLength()
	w := Canonical(s.evaluator.Tag, raw)
	if w.Len() != length || !w.IsLetters() {
		s.Clear()
		return fmt.Errorf("%w: provider returned %q, want %d letters", ErrWordFetchFailed, raw, length)
	}
	return s.StartNewRound(string(w), s.settings.Difficulty.MaxAttempts())
}

// StartNewRound clears prior guesses and starts a round on target.
// Callable from any state.
func (s *Session) StartNewRound(target string, maxAttempts int) error {
	if maxAttempts < 1 {
		return fmt.Errorf("%w: maxAttempts must be at least 1, got %d", ErrInvalidRound, maxAttempts)
	}
	w := Canonical(s.evaluator.Tag, target)
	if !w.IsLetters() {
		return fmt.Errorf("%w: target %q must be one or more letters", ErrInvalidRound, target)
	}
	s.target = w
	s.maxAttempts = maxAttempts
	s.guesses = nil
	s.status = StatusInProgress
	return nil
}

// Clear drops the target and history and returns to StatusAwaitingWord.
func (s *Session) Clear() {
	s.target = ""
	s.maxAttempts = 0
	s.guesses = nil
	s.status = StatusAwaitingWord
}

// SubmitGuess validates and scores a guess, appending it to the history.
//
// Validation rules:
//   - Round must be in progress.
//   - Guess must have as many letters as the target.
//   - Guess must be letters only.
//
// State transitions:
//   - Guess equals the target → won.
//   - Else if the history reaches maxAttempts → lost.
func (s *Session) SubmitGuess(guess string) (EvaluatedGuess, error) {
	if s.status != StatusInProgress {
		return EvaluatedGuess{}, fmt.Errorf("%w: status is %s", ErrSessionNotActive, s.status)
	}
	w := Canonical(s.evaluator.Tag, guess)
	if w.Len() != s.target.Len() {
		return EvaluatedGuess{}, fmt.Errorf("%w: got %d letters, want %d", ErrInvalidGuessLength, w.Len(), s.target.Len())
	}
	if !w.IsLetters() {
		return EvaluatedGuess{}, ErrInvalidLetters
	}

	statuses, err := s.evaluator.Evaluate(string(w), string(s.target))
	if err != nil {
		return EvaluatedGuess{}, err
	}
	eg := EvaluatedGuess{Word: w, Statuses: statuses}
	s.guesses = append(s.guesses, eg)

	if w == s.target {
		s.status = StatusWon
	} else if len(s.guesses) >= s.maxAttempts {
		s.status = StatusLost
	}
	return eg, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Settings returns the language and difficulty the session was created with.
func (s *Session) Settings() Settings { return s.settings }

// Scoring returns the evaluation policy in use.
func (s *Session) Scoring() Scoring {
	if s.evaluator.Scoring == "" {
		return ScoringContains
	}
	return s.evaluator.Scoring
}

// Status reports the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// AttemptsUsed is the number of accepted guesses this round.
func (s *Session) AttemptsUsed() int { return len(s.guesses) }

// AttemptsRemaining is zero while awaiting a word and after the round ends.
func (s *Session) AttemptsRemaining() int {
	if s.status != StatusInProgress {
		return 0
	}
	return s.maxAttempts - len(s.guesses)
}

// WordLength is the target's letter count, or the configured length while
// awaiting a word.
func (s *Session) WordLength() int {
	if s.status == StatusAwaitingWord {
		return s.settings.Difficulty.WordLength()
	}
	return s.target.Len()
}

// MaxAttempts is the round's attempt limit, or the configured limit while
// awaiting a word.
func (s *Session) MaxAttempts() int {
	if s.status == StatusAwaitingWord {
		return s.settings.Difficulty.MaxAttempts()
	}
	return s.maxAttempts
}

// Target returns the current target word; ok is false while awaiting one.
func (s *Session) Target() (w Word, ok bool) {
	return s.target, s.status != StatusAwaitingWord
}

// Guesses returns a copy of the attempt history in submission order.
func (s *Session) Guesses() []EvaluatedGuess {
	out := make([]EvaluatedGuess, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// Latest returns the most recent guess and its index in the history.
func (s *Session) Latest() (EvaluatedGuess, int, bool) {
	if len(s.guesses) == 0 {
		return EvaluatedGuess{}, -1, false
	}
	i := len(s.guesses) - 1
	return s.guesses[i], i, true
}

// Snapshot is a serialisable view of a session. Target is only filled in
// once the round is over.
type Snapshot struct {
	ID                string           `json:"id"`
	Settings          Settings         `json:"settings"`
	Scoring           Scoring          `json:"scoring"`
	Status            Status           `json:"status"`
	WordLength        int              `json:"wordLength"`
	MaxAttempts       int              `json:"maxAttempts"`
	AttemptsUsed      int              `json:"attemptsUsed"`
	AttemptsRemaining int              `json:"attemptsRemaining"`
	Guesses           []EvaluatedGuess `json:"guesses"`
	Target            Word             `json:"target,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:                s.id,
		Settings:          s.settings,
		Scoring:           s.Scoring(),
		Status:            s.status,
		WordLength:        s.WordLength(),
		MaxAttempts:       s.MaxAttempts(),
		AttemptsUsed:      s.AttemptsUsed(),
		AttemptsRemaining: s.AttemptsRemaining(),
		Guesses:           s.Guesses(),
	}
	if s.status.Terminal() {
		snap.Target = s.target
	}
	return snap
}

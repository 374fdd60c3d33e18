// internal/httpserver/server.go
//
// Local HTTP API over game sessions, for a UI layer that keeps no game logic
// of its own.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access log).
//   - Public endpoints: "/", "/health".
//   - Round endpoints: POST /round/new, POST /round/guess, POST /round/reset,
//     GET /round.
//   - Round tokens: HS256 JWT carrying the round ID, read from the
//     Authorization header or the round cookie.
//   - Background sweep of idle rounds.
//
// Notes:
//   - The store serialises access per round; a word fetch for one round
//     never blocks another.
//   - A round whose word fetch failed is still stored, in awaiting_word, so
//     the client can retry with /round/reset using the same token.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/store"
	"github.com/robalobadob/wordguess/internal/words"
)

// Options configures a Server.
type Options struct {
	Secret           string        // HMAC key for round tokens
	ClientOrigin     string        // single CORS origin
	Defaults         game.Settings // used for fields missing from /round/new
	Scoring          game.Scoring
	RoundTTL         time.Duration // token lifetime and idle-sweep threshold
	AllowFixedTarget bool          // accept "target" in requests (testing)
}

// Server bundles router, round store and word provider.
type Server struct {
	r     *chi.Mux
	store store.Store
	words game.WordProvider
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, wp game.WordProvider, opts Options) *Server {
	if opts.RoundTTL <= 0 {
		opts.RoundTTL = 24 * time.Hour
	}
	if opts.Defaults == (game.Settings{}) {
		opts.Defaults = game.DefaultSettings()
	}
	s := &Server{r: chi.NewRouter(), store: st, words: wp, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time, word re-draws included
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(opts.ClientOrigin))      // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordguess","endpoints":["/health","POST /round/new","POST /round/guess","POST /round/reset","GET /round"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/round/new", s.handleNewRound)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireRound)
		r.Get("/round", s.handleGetRound)
		r.Post("/round/guess", s.handleGuess)
		r.Post("/round/reset", s.handleReset)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Run serves HTTP on addr until ctx is cancelled, sweeping idle rounds.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go s.sweepLoop(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) sweepLoop(ctx context.Context) {
	interval := s.opts.RoundTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.store.Sweep(ctx, now.Add(-s.opts.RoundTTL)); n > 0 {
				log.Info().Int("rounds", n).Msg("swept idle rounds")
			}
		}
	}
}

// ------------------------------ ROUNDS --------------------------------------

// newRoundReq is the POST /round/new payload; every field is optional.
type newRoundReq struct {
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
	Target     string `json:"target"` // fixed target word, only with AllowFixedTarget
}

// roundRes is returned by every round endpoint.
type roundRes struct {
	Token string               `json:"token,omitempty"`
	Guess *game.EvaluatedGuess `json:"guess,omitempty"`
	Round game.Snapshot        `json:"round"`
	Error string               `json:"error,omitempty"`
}

// handleNewRound creates a session, stores it, then fetches its word.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := decodeOptional(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}

	settings := s.opts.Defaults
	if req.Language != "" {
		settings.Language = req.Language
	}
	if req.Difficulty != "" {
		d, err := game.ParseDifficulty(req.Difficulty)
		if err != nil {
			writeError(w, err)
			return
		}
		settings.Difficulty = d
	}
	if err := settings.Validate(); err != nil {
		writeError(w, err)
		return
	}
	provider, err := s.providerFor(req.Target)
	if err != nil {
		writeError(w, err)
		return
	}

	sess := game.NewSession(settings, game.WithScoring(s.opts.Scoring))
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save round")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
		return
	}
	tok, exp, err := s.signRoundToken(sess.ID())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sign_failed"})
		return
	}
	s.setRoundCookie(w, tok, exp)

	var snap game.Snapshot
	beginErr := s.store.Update(r.Context(), sess.ID(), func(sess *game.Session) error {
		err := sess.Begin(r.Context(), provider)
		snap = sess.Snapshot()
		return err
	})
	res := roundRes{Token: tok, Round: snap}
	if beginErr != nil {
		log.Warn().Err(beginErr).Str("round", sess.ID()).Msg("begin round")
		res.Error = errorCode(beginErr)
		writeJSON(w, statusFor(beginErr), res)
		return
	}
	log.Info().Str("round", sess.ID()).Str("lang", settings.Language).Str("difficulty", string(settings.Difficulty)).Msg("round started")
	writeJSON(w, http.StatusOK, res)
}

// guessReq is the POST /round/guess payload.
type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess applies a guess to the caller's round.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	id := roundID(r)

	var (
		eg   game.EvaluatedGuess
		snap game.Snapshot
	)
	err := s.store.Update(r.Context(), id, func(sess *game.Session) error {
		var err error
		eg, err = sess.SubmitGuess(req.Guess)
		snap = sess.Snapshot()
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if snap.Status.Terminal() {
		log.Info().Str("round", id).Str("status", string(snap.Status)).Int("attempts", snap.AttemptsUsed).Msg("round finished")
	}
	writeJSON(w, http.StatusOK, roundRes{Guess: &eg, Round: snap})
}

// resetReq is the POST /round/reset payload; optional.
type resetReq struct {
	Target string `json:"target"`
}

// handleReset discards the current round and fetches a new word with the
// same settings. It is also the retry path after a failed fetch. The
// response carries a new token valid for another RoundTTL.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := decodeOptional(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	provider, err := s.providerFor(req.Target)
	if err != nil {
		writeError(w, err)
		return
	}
	id := roundID(r)

	var snap game.Snapshot
	err = s.store.Update(r.Context(), id, func(sess *game.Session) error {
		err := sess.Begin(r.Context(), provider)
		snap = sess.Snapshot()
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, err)
		return
	}
	res := roundRes{Round: snap}

	// A reset extends the round's lifetime; hand out a fresh token.
	tok, exp, signErr := s.signRoundToken(id)
	if signErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sign_failed"})
		return
	}
	s.setRoundCookie(w, tok, exp)
	res.Token = tok

	if err != nil {
		log.Warn().Err(err).Str("round", id).Msg("reset round")
		res.Error = errorCode(err)
		writeJSON(w, statusFor(err), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGetRound returns the caller's round.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), roundID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roundRes{Round: snap})
}

// providerFor returns the configured provider, or a fixed one for target.
func (s *Server) providerFor(target string) (game.WordProvider, error) {
	if target == "" {
		return s.words, nil
	}
	if !s.opts.AllowFixedTarget {
		return nil, errTargetNotAllowed
	}
	return words.NewFixed(target), nil
}

var errTargetNotAllowed = errors.New("fixed target not allowed")

// ------------------------------ responses -----------------------------------

// decodeOptional decodes a JSON body, treating an empty body as {}.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": errorCode(err), "message": err.Error()})
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidGuessLength), errors.Is(err, game.ErrInvalidLetters):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrSessionNotActive):
		return http.StatusConflict
	case errors.Is(err, game.ErrWordFetchFailed):
		return http.StatusBadGateway
	case errors.Is(err, game.ErrInvalidSettings), errors.Is(err, game.ErrInvalidRound), errors.Is(err, errTargetNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorCode is the stable machine-readable error name.
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidGuessLength):
		return "invalid_guess_length"
	case errors.Is(err, game.ErrInvalidLetters):
		return "invalid_letters"
	case errors.Is(err, game.ErrSessionNotActive):
		return "session_not_active"
	case errors.Is(err, game.ErrWordFetchFailed):
		return "word_fetch_failed"
	case errors.Is(err, game.ErrInvalidSettings):
		return "invalid_settings"
	case errors.Is(err, game.ErrInvalidRound):
		return "invalid_round"
	case errors.Is(err, errTargetNotAllowed):
		return "target_not_allowed"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

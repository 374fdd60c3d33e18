// internal/httpserver/tokens.go
//
// Round tokens.
// A token is an HS256 JWT whose "rid" claim names the round. It is issued by
// /round/new and reissued by /round/reset, each time valid for RoundTTL.
// Clients send it as a bearer token or in the round cookie.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const roundCookieName = "wordle_round"

// signRoundToken creates an HS256 JWT carrying the round ID, valid for RoundTTL.
func (s *Server) signRoundToken(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.RoundTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"rid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(s.secret())
	return ss, exp, err
}

// parseRoundToken verifies a token and returns its round ID.
func (s *Server) parseRoundToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	id, _ := claims["rid"].(string)
	if id == "" {
		return "", errors.New("token has no round")
	}
	return id, nil
}

func (s *Server) secret() []byte {
	if s.opts.Secret == "" {
		return []byte("dev_secret_change_me")
	}
	return []byte(s.opts.Secret)
}

// setRoundCookie writes the round token cookie.
func (s *Server) setRoundCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     roundCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or
// the round cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(roundCookieName); err == nil {
		return c.Value
	}
	return ""
}

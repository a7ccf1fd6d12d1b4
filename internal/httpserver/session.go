// internal/httpserver/session.go
//
// Session tokens bind a client to one game in the store.
//
//   - HS256 JWT with the game ID in "gid" and a configurable expiry.
//   - Read from "Authorization: Bearer", then the session cookie, then a
//     "token" query parameter (browsers cannot set headers on WebSockets).
//   - requireSession rejects missing/invalid tokens and puts the game ID in
//     the request context.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// signSession creates a token for gameID.
func (s *Server) signSession(gameID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseSession validates tok and returns its game ID.
func (s *Server) parseSession(tok string) (string, error) {
	claims := &sessionClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.GameID == "" {
		return "", errors.New("invalid session")
	}
	return claims.GameID, nil
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.SecureCookie {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearSessionCookie deletes the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		MaxAge:   -1,
	})
}

// sessionToken extracts a token from header, cookie or query string.
func (s *Server) sessionToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

type ctxGameKey struct{}

// requireSession enforces a valid session token.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.sessionToken(r)
			if tok == "" {
				http.Error(w, `{"error":"no_session"}`, http.StatusUnauthorized)
				return
			}
			id, err := s.parseSession(tok)
			if err != nil {
				http.Error(w, `{"error":"invalid_session"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxGameKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// gameID returns the game ID placed by requireSession.
func gameID(r *http.Request) string {
	id, _ := r.Context().Value(ctxGameKey{}).(string)
	return id
}

package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the signed session token.
const SessionCookie = "swiftcart_session"

const sessionTTL = 30 * 24 * time.Hour

type ctxKey string

const sessionIDKey ctxKey = "session_id"

// Sessions mints and verifies the per-browser session identity that keys
// the persisted cart. The cookie value is an HS256 JWT wrapping a random
// session id.
type Sessions struct {
	secret []byte
	issuer string
}

func NewSessions(secret string) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		issuer: "swiftcart",
	}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *Sessions) mint(sessionID string) (string, error) {
	now := time.Now()

	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Sessions) parse(tokenStr string) (string, error) {
	var c sessionClaims

	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || token == nil || !token.Valid || c.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	if c.Issuer != "" && c.Issuer != s.issuer {
		return "", errors.New("invalid issuer")
	}

	return c.SessionID, nil
}

// Middleware ensures every request carries a session id, minting a fresh
// one when the cookie is absent or fails verification.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if ck, err := r.Cookie(SessionCookie); err == nil {
			sid, _ = s.parse(ck.Value)
		}

		if sid == "" {
			sid = uuid.NewString()
			if token, err := s.mint(sid); err == nil {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(sessionTTL / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionIDKey).(string)
	return v, ok && v != ""
}

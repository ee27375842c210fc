package middleware

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/socialchef/mise/internal/config"
	"github.com/socialchef/mise/internal/form"
	"github.com/socialchef/mise/internal/session"
)

type contextKey string

const (
	SessionIDKey  contextKey = "sessionID"
	ControllerKey contextKey = "controller"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "mise_session"

const defaultTokenTTL = 24 * time.Hour

// Sessions binds requests to form sessions through a signed cookie.
type Sessions struct {
	store  *session.Store
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessions returns the session middleware. An empty secret is replaced by
// a random one, so cookies do not survive a restart.
func NewSessions(store *session.Store, secret string, cfg config.SessionConfig) (*Sessions, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		slog.Warn("SESSION_SECRET not set, using a random secret")
	}

	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Sessions{
		store:  store,
		secret: key,
		ttl:    ttl,
		secure: cfg.SecureCookie,
		now:    time.Now,
	}, nil
}

// Middleware resolves the session for each request. A new session is only
// started by a state-changing request whose cookie is missing, invalid or
// points at an expired session; safe requests without a live session are
// served from a detached controller and get no cookie.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var claimed string
		var expiresAt time.Time
		if cookie, err := r.Cookie(CookieName); err == nil {
			claimed, expiresAt, err = s.parse(cookie.Value)
			if err != nil {
				slog.DebugContext(ctx, "Ignoring session cookie", "error", err)
				claimed = ""
			}
		}

		var controller *form.Controller
		var live bool
		if claimed != "" {
			controller, live = s.store.Get(claimed)
		}
		if !live && isSafeMethod(r.Method) {
			ctx = context.WithValue(ctx, ControllerKey, s.store.Detached())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		id, created := claimed, false
		if !live {
			id, controller = s.store.Create(ctx)
			created = true
		}
		if created || expiresAt.Sub(s.now()) < s.ttl/2 {
			if err := s.issue(w, id); err != nil {
				slog.ErrorContext(ctx, "Failed to issue session cookie", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}

		ctx = context.WithValue(ctx, SessionIDKey, id)
		ctx = context.WithValue(ctx, ControllerKey, controller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// Sign returns a session token for id.
func (s *Sessions) Sign(id string) (string, time.Time, error) {
	exp := s.now().Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *Sessions) issue(w http.ResponseWriter, id string) error {
	token, exp, err := s.Sign(id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Sessions) parse(tokenString string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", time.Time{}, fmt.Errorf("invalid session token: %w", err)
	}
	if claims.Subject == "" {
		return "", time.Time{}, fmt.Errorf("session token has no subject")
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}

// GetSessionID extracts the session id from request context
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}

// GetController extracts the session's form controller from request context
func GetController(ctx context.Context) (*form.Controller, bool) {
	c, ok := ctx.Value(ControllerKey).(*form.Controller)
	return c, ok && c != nil
}

// RequireSession is a helper that returns 500 if the session middleware did not run
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetController(r.Context()); !ok {
			http.Error(w, "Session unavailable", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Package auth resolves the acting identity (Principal) for API requests.
//
// Two credentials are accepted: a bearer token (HS256 JWT) in the
// Authorization header, or the signed session cookie. The webhook ingress
// never uses this package; its principal comes out of the signed
// interaction payload itself.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey   = "is_authenticated"
	userIDKey   = "user_id"
	userEmail   = "user_email"
	userName    = "user_name"
	userDiscord = "user_discord_id"
)

// Principal is the resolved identity of an actor. Identity capture in this
// system is uneven: some records carry only the internal user ID, some only
// the Discord ID. Any field may be blank; authorization checks every field
// it has rather than treating one as canonical.
type Principal struct {
	UserID    string
	Email     string
	DiscordID string
	Name      string
}

// Resolved reports whether any identity field is present.
func (p Principal) Resolved() bool {
	return p.UserID != "" || p.Email != "" || p.DiscordID != ""
}

type ctxKey string

const principalKey ctxKey = "principal"

// Resolver extracts Principals from incoming requests.
type Resolver struct {
	store       *sessions.CookieStore
	sessionName string
	jwtSecret   []byte
	log         *zap.Logger
}

// NewResolver builds a Resolver. sessionKey signs the cookie store;
// jwtSecret verifies bearer tokens.
func NewResolver(sessionKey, sessionName, domain string, secure bool, jwtSecret string, logger *zap.Logger) (*Resolver, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts

	return &Resolver{
		store:       store,
		sessionName: sessionName,
		jwtSecret:   []byte(jwtSecret),
		log:         logger,
	}, nil
}

// CurrentPrincipal returns the principal placed in context by
// LoadPrincipal, with a found flag.
func CurrentPrincipal(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok && p.Resolved()
}

// LoadPrincipal is middleware that resolves the request's identity into
// context. A bearer token wins over the session cookie; an invalid bearer
// token does not fall through to the cookie (a caller that sent a token
// meant to use it). Requests with neither credential pass through with no
// principal; handlers that require one respond 401 themselves.
func (rs *Resolver) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw, ok := bearerToken(r); ok {
			p, err := rs.fromBearer(raw)
			if err != nil {
				rs.log.Warn("bearer token rejected", zap.Error(err))
			} else {
				r = withPrincipal(r, p)
			}
			next.ServeHTTP(w, r)
			return
		}

		if p, ok := rs.fromSession(r); ok {
			r = withPrincipal(r, p)
		}
		next.ServeHTTP(w, r)
	})
}

// SaveSession writes the principal into the session cookie. Used by the
// login flow after the identity provider confirms the user.
func (rs *Resolver) SaveSession(w http.ResponseWriter, r *http.Request, p Principal) error {
	sess, _ := rs.store.Get(r, rs.sessionName)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = p.UserID
	sess.Values[userEmail] = p.Email
	sess.Values[userName] = p.Name
	sess.Values[userDiscord] = p.DiscordID
	return sess.Save(r, w)
}

// ClearSession drops the session cookie.
func (rs *Resolver) ClearSession(w http.ResponseWriter, r *http.Request) error {
	sess, _ := rs.store.Get(r, rs.sessionName)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func (rs *Resolver) fromSession(r *http.Request) (Principal, bool) {
	sess, _ := rs.store.Get(r, rs.sessionName)
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return Principal{}, false
	}
	p := Principal{
		UserID:    getString(sess, userIDKey),
		Email:     getString(sess, userEmail),
		Name:      getString(sess, userName),
		DiscordID: getString(sess, userDiscord),
	}
	return p, p.Resolved()
}

// fromBearer verifies an HS256 JWT and maps its claims to a Principal.
func (rs *Resolver) fromBearer(raw string) (Principal, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return rs.jwtSecret, nil
	})
	if err != nil {
		return Principal{}, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("unexpected claims type %T", tok.Claims)
	}
	p := Principal{
		UserID:    claimString(claims, "uid"),
		Email:     claimString(claims, "email"),
		DiscordID: claimString(claims, "discord_id"),
		Name:      claimString(claims, "name"),
	}
	if !p.Resolved() {
		return Principal{}, fmt.Errorf("token carries no identity claims")
	}
	return p, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

func withPrincipal(r *http.Request, p Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

// WithTestPrincipal injects a principal directly, bypassing credentials.
// Test use only.
func WithTestPrincipal(r *http.Request, p Principal) *http.Request {
	return withPrincipal(r, p)
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

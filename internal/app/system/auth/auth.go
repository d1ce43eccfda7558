// internal/app/system/auth/auth.go

// Package auth turns bearer tokens into an authenticated Principal in the
// request context. Token issuance and verification live here; what a
// principal may do is decided by the authz evaluator, never in this package.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

// Principal is the authenticated actor attached to a request.
// IDs are canonical hex strings; ownership checks compare these directly.
type Principal struct {
	ID            string
	Role          models.Role
	GroupID       string // set for youths
	FacilitatorID string // set for youths
}

type claims struct {
	jwt.RegisteredClaims
	Role          string `json:"role"`
	GroupID       string `json:"groupId,omitempty"`
	FacilitatorID string `json:"facilitatorId,omitempty"`
}

// Manager signs and verifies identity tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewManager builds a token manager. The signing key must be non-empty;
// a blank key would make every token forgeable.
func NewManager(secret string, ttl time.Duration, logger *zap.Logger) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: signing key must not be empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// Issue creates a signed token for the given user carrying the claims the
// rest of the system authorizes on: subject id, role, and for youths the
// group and owning-facilitator linkage.
func (m *Manager) Issue(u models.User) (string, error) {
	now := time.Now().UTC()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: u.Role.String(),
	}
	if u.GroupID != nil {
		c.GroupID = u.GroupID.Hex()
	}
	if u.FacilitatorID != nil {
		c.FacilitatorID = u.FacilitatorID.Hex()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Verify parses and validates a token and returns the Principal it carries.
// Any defect (bad signature, expiry, unknown role, missing subject) fails
// closed with a generic error.
func (m *Manager) Verify(token string) (*Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if c.Subject == "" {
		return nil, errors.New("auth: token has no subject")
	}
	role, err := models.ParseRole(c.Role)
	if err != nil {
		return nil, err
	}
	return &Principal{
		ID:            c.Subject,
		Role:          role,
		GroupID:       c.GroupID,
		FacilitatorID: c.FacilitatorID,
	}, nil
}

type ctxKey string

const principalKey ctxKey = "principal"

// CurrentPrincipal returns the request's principal and a found flag.
func CurrentPrincipal(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(principalKey).(*Principal)
	return p, ok
}

// LoadPrincipal injects the principal into context when the request carries
// a valid bearer token. Requests with no token, or with an invalid or
// expired one, continue unauthenticated; RequireSignedIn turns that into
// a 401 on protected routes.
func (m *Manager) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			p, err := m.Verify(token)
			if err != nil {
				m.log.Debug("rejected bearer token", zap.Error(err))
			} else {
				r = withPrincipal(r, p)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a principal in context
// (set by LoadPrincipal) and responds 401 otherwise.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentPrincipal(r); !ok {
			apierror.Write(w, m.log, apierror.Unauthenticated("missing or invalid token"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestPrincipal injects a principal directly, bypassing token
// verification. Handler tests use this instead of minting tokens.
func WithTestPrincipal(r *http.Request, p *Principal) *http.Request {
	return withPrincipal(r, p)
}

func withPrincipal(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

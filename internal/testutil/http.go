package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// FacilitatorPrincipal returns a principal for the given facilitator user.
func FacilitatorPrincipal(u models.User) *auth.Principal {
	return &auth.Principal{ID: u.ID.Hex(), Role: models.RoleFacilitator}
}

// YouthPrincipal returns a principal for the given youth user, carrying
// its group and owning-facilitator linkage.
func YouthPrincipal(u models.User) *auth.Principal {
	p := &auth.Principal{ID: u.ID.Hex(), Role: models.RoleYouth}
	if u.GroupID != nil {
		p.GroupID = u.GroupID.Hex()
	}
	if u.FacilitatorID != nil {
		p.FacilitatorID = u.FacilitatorID.Hex()
	}
	return p
}

// RandomFacilitatorPrincipal returns a facilitator principal with a fresh
// id, useful for cross-tenant denial tests.
func RandomFacilitatorPrincipal() *auth.Principal {
	return &auth.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleFacilitator}
}

// NewAuthenticatedRequest creates an HTTP request with the principal in
// context, bypassing token verification the way handler tests want.
func NewAuthenticatedRequest(method, target string, body io.Reader, p *auth.Principal) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return auth.WithTestPrincipal(req, p)
}

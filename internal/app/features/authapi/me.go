// internal/app/features/authapi/me.go
package authapi

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
)

type meResponse struct {
	OK   bool      `json:"ok"`
	User loginUser `json:"user"`
}

// ServeMe returns the caller's fresh profile. The token claims alone are
// not enough here: role or name changes since issuance should be visible.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		apierror.Write(w, h.Log, apierror.Unauthenticated("authentication required"))
		return
	}
	id, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		apierror.Write(w, h.Log, apierror.Unauthenticated("authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierror.Write(w, h.Log, apierror.NotFound("user not found"))
			return
		}
		apierror.Write(w, h.Log, err)
		return
	}

	resp := meResponse{OK: true, User: loginUser{
		ID:    u.ID.Hex(),
		Role:  u.Role,
		Name:  u.Name,
		Email: u.Email,
	}}
	if u.GroupID != nil {
		resp.User.GroupID = u.GroupID.Hex()
	}
	apierror.WriteJSON(w, http.StatusOK, resp)
}

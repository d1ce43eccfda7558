// internal/app/features/groupsapi/create.go
package groupsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/authz"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type createGroupResponse struct {
	OK    bool         `json:"ok"`
	Group models.Group `json:"group"`
}

// HandleCreateGroup creates an empty group owned by the calling
// facilitator.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)
	if err := authz.Authorize(p, authz.Rule{Role: models.RoleFacilitator}); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid request body"))
		return
	}
	if len(strings.TrimSpace(req.Name)) < 2 {
		apierror.Write(w, h.Log, apierror.Validation("group name must be at least 2 characters"))
		return
	}

	facilitatorID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		apierror.Write(w, h.Log, apierror.Unauthenticated("authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.Create(ctx, models.Group{
		Name:          strings.TrimSpace(req.Name),
		FacilitatorID: facilitatorID,
	})
	if err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	apierror.WriteJSON(w, http.StatusCreated, createGroupResponse{OK: true, Group: g})
}

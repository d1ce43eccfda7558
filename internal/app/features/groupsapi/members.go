// internal/app/features/groupsapi/members.go
package groupsapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/waypointhub/waypoint/internal/app/policy/grouppolicy"
	groupstore "github.com/waypointhub/waypoint/internal/app/store/groups"
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
)

type membersResponse struct {
	OK      bool               `json:"ok"`
	Members []groupstore.Member `json:"members"`
}

// ServeMembers returns the group's youth roster for its owning
// facilitator.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupID"))
	if err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid group id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := grouppolicy.RequireOwner(ctx, h.Groups, p, groupID); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	members, err := h.Groups.Members(ctx, groupID)
	if err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	apierror.WriteJSON(w, http.StatusOK, membersResponse{OK: true, Members: members})
}
